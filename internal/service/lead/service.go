package lead

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"leadtrack-crm/internal/domain"
	"leadtrack-crm/internal/pkg/logger"
	"leadtrack-crm/internal/pkg/validator"
	"leadtrack-crm/internal/policy"
	"leadtrack-crm/internal/repository"
	"leadtrack-crm/internal/service/email"
)

const notesCacheTTL = 5 * time.Minute

type Service interface {
	Create(ctx context.Context, actor *domain.User, input domain.CreateLeadInput) (*domain.Lead, error)
	GetByID(ctx context.Context, actor *domain.User, id int64) (*domain.Lead, error)
	List(ctx context.Context, actor *domain.User, filter domain.LeadFilter, params domain.PaginationParams) (domain.Page[domain.Lead], error)
	Update(ctx context.Context, actor *domain.User, id int64, input domain.UpdateLeadInput) (*domain.Lead, error)
	Delete(ctx context.Context, actor *domain.User, id int64) error

	AddNote(ctx context.Context, actor *domain.User, leadID int64, input domain.CreateNoteInput) (*domain.Note, error)
	ListNotes(ctx context.Context, actor *domain.User, leadID int64) ([]domain.Note, error)
	UpdateNote(ctx context.Context, actor *domain.User, leadID, noteID int64, input domain.UpdateNoteInput) (*domain.Note, error)

	ListActivities(ctx context.Context, actor *domain.User, leadID int64, params domain.PaginationParams) (domain.Page[domain.Activity], error)

	LogEmail(ctx context.Context, actor *domain.User, leadID int64, input domain.LogEmailInput) (*domain.EmailLog, error)
	ListEmails(ctx context.Context, actor *domain.User, leadID int64) ([]domain.EmailLog, error)
	SendEmail(ctx context.Context, actor *domain.User, leadID int64, input domain.SendEmailInput) (*domain.SendEmailResult, error)
}

// FollowUpScheduler creates the follow_up notification for a lead whose next
// follow-up moved. The notification service implements it.
type FollowUpScheduler interface {
	ScheduleFollowUp(ctx context.Context, lead *domain.Lead) (*domain.Notification, error)
}

type Deps struct {
	Leads      repository.LeadRepository
	Notes      repository.NoteRepository
	Activities repository.ActivityRepository
	EmailLogs  repository.EmailLogRepository
	Users      repository.UserRepository
	FollowUps  FollowUpScheduler
	Email      email.Service
	Policy     policy.Policy
	Redis      *redis.Client
	Log        *zap.Logger
	Now        func() time.Time
}

type service struct {
	leadRepo     repository.LeadRepository
	noteRepo     repository.NoteRepository
	activityRepo repository.ActivityRepository
	emailLogRepo repository.EmailLogRepository
	userRepo     repository.UserRepository
	followUps    FollowUpScheduler
	emailSvc     email.Service
	policy       policy.Policy
	redis        *redis.Client
	log          *zap.Logger
	now          func() time.Time
}

func NewService(d Deps) Service {
	now := d.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		leadRepo:     d.Leads,
		noteRepo:     d.Notes,
		activityRepo: d.Activities,
		emailLogRepo: d.EmailLogs,
		userRepo:     d.Users,
		followUps:    d.FollowUps,
		emailSvc:     d.Email,
		policy:       d.Policy,
		redis:        d.Redis,
		log:          logger.OrNop(d.Log).Named("lead"),
		now:          now,
	}
}

func (s *service) Create(ctx context.Context, actor *domain.User, input domain.CreateLeadInput) (*domain.Lead, error) {
	if err := validator.Struct(input); err != nil {
		return nil, err
	}
	if err := checkFollowUp("next_follow_up", input.NextFollowUp, s.now()); err != nil {
		return nil, err
	}

	ownerID := actor.ID
	lead := &domain.Lead{
		Name:         input.Name,
		Email:        input.Email,
		CompanyName:  input.CompanyName,
		Industry:     input.Industry,
		Status:       domain.LeadStatusNew,
		AssignedTo:   &ownerID,
		NextFollowUp: input.NextFollowUp,
		CalendlyLink: input.CalendlyLink,
	}

	if err := s.leadRepo.Create(ctx, lead); err != nil {
		return nil, err
	}

	s.record(ctx, lead.ID, actor.ID, domain.ActivityLeadCreated, fmt.Sprintf("Lead created by %s", actor.FullName()))
	if lead.NextFollowUp != nil {
		s.followUpMoved(ctx, actor, lead)
	}
	return lead, nil
}

func (s *service) GetByID(ctx context.Context, actor *domain.User, id int64) (*domain.Lead, error) {
	return s.authorizedLead(ctx, actor, id)
}

func (s *service) List(ctx context.Context, actor *domain.User, filter domain.LeadFilter, params domain.PaginationParams) (domain.Page[domain.Lead], error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return domain.Page[domain.Lead]{}, domain.NewValidationError("status", "is not a valid lead status")
	}

	params.Normalize()
	filter = policy.ScopeLeadFilter(actor, filter)

	leads, total, err := s.leadRepo.List(ctx, filter, params)
	if err != nil {
		return domain.Page[domain.Lead]{}, err
	}
	return domain.NewPage(leads, params, total), nil
}

func (s *service) Update(ctx context.Context, actor *domain.User, id int64, input domain.UpdateLeadInput) (*domain.Lead, error) {
	lead, err := s.authorizedLead(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := validator.Struct(input); err != nil {
		return nil, err
	}

	before := *lead

	if input.Name != nil {
		lead.Name = *input.Name
	}
	if input.Email != nil {
		lead.Email = *input.Email
	}
	if input.CompanyName != nil {
		lead.CompanyName = *input.CompanyName
	}
	if input.Industry != nil {
		lead.Industry = input.Industry
	}
	if input.Status != nil {
		lead.Status = *input.Status
	}
	if input.CalendlyLink != nil {
		lead.CalendlyLink = input.CalendlyLink
	}
	if input.AssignedTo.Set && s.policy.CanReassignLead(actor) {
		if err := s.checkAssignee(ctx, input.AssignedTo.Value); err != nil {
			return nil, err
		}
		lead.AssignedTo = input.AssignedTo.Value
	}
	if input.NextFollowUp.Set {
		if err := checkFollowUp("next_follow_up", input.NextFollowUp.Value, lead.CreatedAt); err != nil {
			return nil, err
		}
		lead.NextFollowUp = input.NextFollowUp.Value
	}

	if err := s.leadRepo.Update(ctx, lead); err != nil {
		return nil, err
	}

	if before.Status != lead.Status {
		s.record(ctx, lead.ID, actor.ID, domain.ActivityStatusChanged,
			fmt.Sprintf("Status changed from %s to %s", before.Status, lead.Status))
	}
	if !sameOwner(before.AssignedTo, lead.AssignedTo) {
		s.record(ctx, lead.ID, actor.ID, domain.ActivityLeadReassigned, describeOwner(lead.AssignedTo))
	}
	if lead.NextFollowUp != nil && !sameTime(before.NextFollowUp, lead.NextFollowUp) {
		s.followUpMoved(ctx, actor, lead)
	}

	return lead, nil
}

func (s *service) Delete(ctx context.Context, actor *domain.User, id int64) error {
	lead, err := s.leadRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if lead == nil {
		return domain.NotFoundf("lead %d", id)
	}
	if !s.policy.CanDeleteLead(actor) {
		return domain.ErrForbidden
	}

	if err := s.leadRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateNotes(ctx, id)
	s.log.Info("lead deleted", zap.Int64("lead_id", id), zap.Int64("actor_id", actor.ID))
	return nil
}

func (s *service) AddNote(ctx context.Context, actor *domain.User, leadID int64, input domain.CreateNoteInput) (*domain.Note, error) {
	if _, err := s.authorizedLead(ctx, actor, leadID); err != nil {
		return nil, err
	}
	if err := validator.Struct(input); err != nil {
		return nil, err
	}

	note := &domain.Note{
		LeadID:  leadID,
		UserID:  actor.ID,
		Content: input.Content,
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, err
	}
	note.Author = &domain.NoteAuthor{ID: actor.ID, FirstName: actor.FirstName, LastName: actor.LastName}

	s.invalidateNotes(ctx, leadID)
	s.record(ctx, leadID, actor.ID, domain.ActivityNoteAdded, "Note added")
	return note, nil
}

func (s *service) ListNotes(ctx context.Context, actor *domain.User, leadID int64) ([]domain.Note, error) {
	if _, err := s.authorizedLead(ctx, actor, leadID); err != nil {
		return nil, err
	}

	cacheKey := notesKey(leadID)
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var notes []domain.Note
			if json.Unmarshal([]byte(cached), &notes) == nil {
				return notes, nil
			}
		}
	}

	notes, err := s.noteRepo.ListByLead(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []domain.Note{}
	}

	if s.redis != nil {
		if raw, err := json.Marshal(notes); err == nil {
			_ = s.redis.Set(ctx, cacheKey, raw, notesCacheTTL).Err()
		}
	}
	return notes, nil
}

func (s *service) UpdateNote(ctx context.Context, actor *domain.User, leadID, noteID int64, input domain.UpdateNoteInput) (*domain.Note, error) {
	if _, err := s.authorizedLead(ctx, actor, leadID); err != nil {
		return nil, err
	}

	note, err := s.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if note == nil || note.LeadID != leadID {
		return nil, domain.NotFoundf("note %d", noteID)
	}
	if err := validator.Struct(input); err != nil {
		return nil, err
	}

	note.Content = input.Content
	if err := s.noteRepo.Update(ctx, note); err != nil {
		return nil, err
	}

	s.invalidateNotes(ctx, leadID)
	return note, nil
}

func (s *service) ListActivities(ctx context.Context, actor *domain.User, leadID int64, params domain.PaginationParams) (domain.Page[domain.Activity], error) {
	if _, err := s.authorizedLead(ctx, actor, leadID); err != nil {
		return domain.Page[domain.Activity]{}, err
	}

	params.Normalize()
	activities, total, err := s.activityRepo.ListByLead(ctx, leadID, params)
	if err != nil {
		return domain.Page[domain.Activity]{}, err
	}
	return domain.NewPage(activities, params, total), nil
}

func (s *service) LogEmail(ctx context.Context, actor *domain.User, leadID int64, input domain.LogEmailInput) (*domain.EmailLog, error) {
	lead, err := s.authorizedLead(ctx, actor, leadID)
	if err != nil {
		return nil, err
	}
	if err := validator.Struct(input); err != nil {
		return nil, err
	}
	if err := checkFollowUp("scheduled_follow_up", input.ScheduledFollowUp, lead.CreatedAt); err != nil {
		return nil, err
	}

	log := &domain.EmailLog{
		LeadID:            leadID,
		UserID:            actor.ID,
		Direction:         input.Direction,
		Subject:           &input.Subject,
		Content:           &input.Content,
		ResponseType:      input.ResponseType,
		ScheduledFollowUp: input.ScheduledFollowUp,
	}
	activity := newActivity(leadID, actor.ID, domain.ActivityEmailLogged,
		fmt.Sprintf("Email %s: %s", input.Direction, input.Subject))

	if err := s.emailLogRepo.Record(ctx, log, activity); err != nil {
		return nil, err
	}

	s.afterContact(ctx, actor, lead, log)
	return log, nil
}

func (s *service) ListEmails(ctx context.Context, actor *domain.User, leadID int64) ([]domain.EmailLog, error) {
	if _, err := s.authorizedLead(ctx, actor, leadID); err != nil {
		return nil, err
	}

	logs, err := s.emailLogRepo.ListByLead(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []domain.EmailLog{}
	}
	return logs, nil
}

// SendEmail delivers the message first. When delivery fails nothing is
// logged and the lead is left untouched.
func (s *service) SendEmail(ctx context.Context, actor *domain.User, leadID int64, input domain.SendEmailInput) (*domain.SendEmailResult, error) {
	lead, err := s.authorizedLead(ctx, actor, leadID)
	if err != nil {
		return nil, err
	}
	if err := validator.Struct(input); err != nil {
		return nil, err
	}
	if err := checkFollowUp("scheduled_follow_up", input.ScheduledFollowUp, lead.CreatedAt); err != nil {
		return nil, err
	}

	messageID, err := s.emailSvc.Send(ctx, email.Message{
		To:      lead.Email,
		Subject: input.Subject,
		Text:    input.Content,
	})
	if err != nil {
		s.log.Warn("manual email failed", zap.Int64("lead_id", leadID), zap.Error(err))
		return nil, err
	}

	log := &domain.EmailLog{
		LeadID:            leadID,
		UserID:            actor.ID,
		Direction:         domain.EmailSent,
		Subject:           &input.Subject,
		Content:           &input.Content,
		ResponseType:      input.ResponseType,
		ScheduledFollowUp: input.ScheduledFollowUp,
		ProviderMessageID: &messageID,
	}
	activity := newActivity(leadID, actor.ID, domain.ActivityEmailSent, fmt.Sprintf("Email sent: %s", input.Subject))

	if err := s.emailLogRepo.Record(ctx, log, activity); err != nil {
		// The message already left; surface the storage failure but keep the id in the log.
		s.log.Error("email sent but not recorded",
			zap.Int64("lead_id", leadID),
			zap.String("message_id", messageID),
			zap.Error(err),
		)
		return nil, err
	}

	s.afterContact(ctx, actor, lead, log)
	return &domain.SendEmailResult{Email: log, MessageID: messageID}, nil
}

// afterContact mirrors what Record did to the lead row and fires the
// follow-up side effect when the email moved next_follow_up.
func (s *service) afterContact(ctx context.Context, actor *domain.User, lead *domain.Lead, log *domain.EmailLog) {
	sentAt := log.SentAt
	lead.LastContactDate = &sentAt

	if log.ScheduledFollowUp == nil || sameTime(lead.NextFollowUp, log.ScheduledFollowUp) {
		return
	}
	next := *log.ScheduledFollowUp
	lead.NextFollowUp = &next
	s.followUpMoved(ctx, actor, lead)
}

// followUpMoved records the activity and schedules the owner's follow_up
// notification. Failures are logged; the lead change itself already stands.
func (s *service) followUpMoved(ctx context.Context, actor *domain.User, lead *domain.Lead) {
	s.record(ctx, lead.ID, actor.ID, domain.ActivityFollowUpScheduled,
		fmt.Sprintf("Follow-up scheduled for %s", lead.NextFollowUp.UTC().Format(time.RFC3339)))

	if s.followUps == nil {
		return
	}
	if _, err := s.followUps.ScheduleFollowUp(ctx, lead); err != nil {
		s.log.Error("follow-up notification not created", zap.Int64("lead_id", lead.ID), zap.Error(err))
	}
}

func (s *service) authorizedLead(ctx context.Context, actor *domain.User, id int64) (*domain.Lead, error) {
	lead, err := s.leadRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, domain.NotFoundf("lead %d", id)
	}
	if err := policy.AuthorizeLead(s.policy, actor, lead); err != nil {
		return nil, err
	}
	return lead, nil
}

func (s *service) checkAssignee(ctx context.Context, userID *int64) error {
	if userID == nil {
		return nil
	}
	user, err := s.userRepo.GetByID(ctx, *userID)
	if err != nil {
		return err
	}
	if user == nil || !user.IsActive {
		return domain.NewValidationError("assigned_to", "must reference an active user")
	}
	return nil
}

func (s *service) record(ctx context.Context, leadID, userID int64, kind domain.ActivityType, description string) {
	if err := s.activityRepo.Create(ctx, newActivity(leadID, userID, kind, description)); err != nil {
		s.log.Warn("activity not recorded",
			zap.Int64("lead_id", leadID),
			zap.String("type", string(kind)),
			zap.Error(err),
		)
	}
}

func (s *service) invalidateNotes(ctx context.Context, leadID int64) {
	if s.redis != nil {
		_ = s.redis.Del(ctx, notesKey(leadID)).Err()
	}
}

func notesKey(leadID int64) string {
	return fmt.Sprintf("notes:lead:%d", leadID)
}

func newActivity(leadID, userID int64, kind domain.ActivityType, description string) *domain.Activity {
	return &domain.Activity{
		LeadID:       leadID,
		UserID:       userID,
		ActivityType: kind,
		Description:  &description,
	}
}

func checkFollowUp(field string, next *time.Time, notBefore time.Time) error {
	if next != nil && next.Before(notBefore) {
		return domain.NewValidationError(field, "must not be before the lead was created")
	}
	return nil
}

func sameTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func sameOwner(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func describeOwner(userID *int64) string {
	if userID == nil {
		return "Lead unassigned"
	}
	return fmt.Sprintf("Lead reassigned to user %d", *userID)
}
