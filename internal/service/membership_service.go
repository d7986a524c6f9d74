package service

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/club-service/internal/auth"
	"github.com/spec-kit/club-service/internal/domain"
	"github.com/spec-kit/club-service/internal/events"
	"github.com/spec-kit/club-service/internal/observability"
	"github.com/spec-kit/club-service/internal/repository"
	"github.com/spec-kit/club-service/internal/storage"
	"github.com/spec-kit/club-service/pkg/slug"
	apperrors "github.com/spec-kit/club-service/pkg/util/errorutil"
)

// Decision is an admin verdict on a membership request.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// MembershipService orchestrates the intake workflow: uniqueness check,
// photo upload, user + request creation and the approval state machine.
type MembershipService struct {
	users         repository.UserRepository
	requests      repository.MembershipRequestRepository
	blobs         storage.BlobStore
	dispatcher    events.Dispatcher
	logger        *zap.Logger
	profilePrefix string
	bcryptCost    int
}

// MembershipDependencies bundles collaborators for the service.
type MembershipDependencies struct {
	UserRepo      repository.UserRepository
	RequestRepo   repository.MembershipRequestRepository
	BlobStore     storage.BlobStore
	Dispatcher    events.Dispatcher
	Logger        *zap.Logger
	ProfilePrefix string
	BcryptCost    int
}

// ApplicationInput is the parsed membership form.
type ApplicationInput struct {
	FullName        string
	IDCard          string
	Email           string
	Phone           *string
	Password        string
	Gender          *string
	Province        *string
	BirthDate       *string
	BloodType       *string
	Allergies       *string
	Diseases        *string
	PastInjuries    *string
	CurrentInjuries *string
	Height          *float64
	Weight          *float64
	FatPercentage   *float64
	FootwearType    *string
	Record5K        *string
	Record10K       *string
	Record21K       *string
	Record42K       *string
	RecordWkg       *string
	StrydUser       *string
	FinalSurgeUser  *string

	TrainingGoals         []string
	ShortTermGoals        *string
	MidTermGoals          *string
	LongTermGoals         *string
	TrainingDaysPerWeek   *int
	HasTrainedWithStryd   bool
	HasStructuredTraining bool
	DiscoveryMethod       *string
	IsAlreadyMember       bool
}

// Photo is an optional uploaded profile picture.
type Photo struct {
	FileName    string
	ContentType string
	Data        []byte
}

// ApplicationResult reports what the intake created.
type ApplicationResult struct {
	UserID   int64
	PhotoKey *string
}

// NewMembershipService constructs the service.
func NewMembershipService(deps MembershipDependencies) *MembershipService {
	prefix := deps.ProfilePrefix
	if prefix == "" {
		prefix = "profiles"
	}
	return &MembershipService{
		users:         deps.UserRepo,
		requests:      deps.RequestRepo,
		blobs:         deps.BlobStore,
		dispatcher:    deps.Dispatcher,
		logger:        deps.Logger,
		profilePrefix: prefix,
		bcryptCost:    deps.BcryptCost,
	}
}

// SubmitApplication runs the intake workflow. The applicant's self-declared
// membership status lands on the request only; the user row always starts
// with isMember=false and is promoted exclusively through approval.
func (s *MembershipService) SubmitApplication(ctx context.Context, input ApplicationInput, photo *Photo) (*ApplicationResult, error) {
	hashed, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	field, err := s.users.FindCollision(ctx, input.Email, input.IDCard)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if field != "" {
		return nil, apperrors.NewDuplicateApplicant(field)
	}

	var photoKey *string
	if photo != nil && len(photo.Data) > 0 {
		key := s.profilePhotoKey(input.FullName, photo.FileName)
		if err := s.blobs.Put(ctx, key, photo.Data, photo.ContentType); err != nil {
			return nil, apperrors.NewStorageFailure(err)
		}
		photoKey = &key
	}

	user := &domain.User{
		FullName:        strings.TrimSpace(input.FullName),
		IDCard:          strings.TrimSpace(input.IDCard),
		Email:           strings.TrimSpace(input.Email),
		Phone:           input.Phone,
		PasswordHash:    hashed,
		Gender:          input.Gender,
		Province:        input.Province,
		BirthDate:       input.BirthDate,
		PhotoURL:        photoKey,
		BloodType:       input.BloodType,
		Allergies:       input.Allergies,
		Diseases:        input.Diseases,
		PastInjuries:    input.PastInjuries,
		CurrentInjuries: input.CurrentInjuries,
		Height:          input.Height,
		Weight:          input.Weight,
		FatPercentage:   input.FatPercentage,
		FootwearType:    input.FootwearType,
		Record5K:        input.Record5K,
		Record10K:       input.Record10K,
		Record21K:       input.Record21K,
		Record42K:       input.Record42K,
		RecordWkg:       input.RecordWkg,
		StrydUser:       input.StrydUser,
		FinalSurgeUser:  input.FinalSurgeUser,
		IsMember:        false,
	}
	request := &domain.MembershipRequest{
		TrainingGoals:         input.TrainingGoals,
		ShortTermGoals:        input.ShortTermGoals,
		MidTermGoals:          input.MidTermGoals,
		LongTermGoals:         input.LongTermGoals,
		TrainingDaysPerWeek:   input.TrainingDaysPerWeek,
		HasTrainedWithStryd:   input.HasTrainedWithStryd,
		HasStructuredTraining: input.HasStructuredTraining,
		DiscoveryMethod:       input.DiscoveryMethod,
		IsAlreadyMember:       input.IsAlreadyMember,
		Status:                domain.RequestStatusPending,
	}

	if err := s.requests.CreateWithUser(ctx, user, request); err != nil {
		s.cleanupOrphanPhoto(ctx, photoKey)
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.NewDuplicateApplicant(repository.UniqueViolationField(err))
		}
		return nil, apperrors.MapError(err)
	}

	observability.ApplicationsSubmitted.Inc()
	s.publishEvent(ctx, events.Event{
		Type:      events.EventApplicationSubmitted,
		RequestID: request.ID,
		UserID:    user.ID,
		Payload: events.ApplicationSubmittedPayload{
			FullName: user.FullName,
			Email:    user.Email,
			PhotoKey: photoKey,
		},
	})

	return &ApplicationResult{UserID: user.ID, PhotoKey: photoKey}, nil
}

// DecideApplication applies an admin verdict. Only pending requests can
// transition; deciding an already-decided request is a conflict.
func (s *MembershipService) DecideApplication(ctx context.Context, requestID int64, decision Decision) error {
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("solicitud", map[string]any{"requestId": requestID})
		}
		return apperrors.MapError(err)
	}

	if request.Status.IsTerminal() {
		return apperrors.NewConflict("la solicitud ya fue decidida", map[string]any{
			"requestId": requestID,
			"status":    string(request.Status),
		})
	}

	switch decision {
	case DecisionApprove:
		if err := s.requests.Approve(ctx, request.ID, request.UserID); err != nil {
			return apperrors.MapError(err)
		}
		observability.ApplicationsDecided.WithLabelValues("approve").Inc()
		s.publishEvent(ctx, events.Event{
			Type:      events.EventApplicationApproved,
			RequestID: request.ID,
			UserID:    request.UserID,
			Payload:   events.ApplicationDecidedPayload{Decision: string(DecisionApprove)},
		})
	case DecisionReject:
		if err := s.requests.Reject(ctx, request.ID); err != nil {
			return apperrors.MapError(err)
		}
		observability.ApplicationsDecided.WithLabelValues("reject").Inc()
		s.publishEvent(ctx, events.Event{
			Type:      events.EventApplicationRejected,
			RequestID: request.ID,
			UserID:    request.UserID,
			Payload:   events.ApplicationDecidedPayload{Decision: string(DecisionReject)},
		})
	default:
		return apperrors.NewValidationError("acción inválida", map[string]any{"action": string(decision)})
	}

	return nil
}

// ListPendingRequests returns requests awaiting review, oldest first,
// joined with an applicant summary.
func (s *MembershipService) ListPendingRequests(ctx context.Context) ([]domain.PendingRequest, error) {
	pending, err := s.requests.ListPending(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return pending, nil
}

// profilePhotoKey derives a collision-resistant storage key. The uuid
// suffix guards against two same-name submissions in the same millisecond.
func (s *MembershipService) profilePhotoKey(fullName, fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	name := slug.Make(fullName)
	if name == "" {
		name = "applicant"
	}
	suffix := strings.Split(uuid.NewString(), "-")[0]
	return fmt.Sprintf("%s/%d-%s-%s%s", s.profilePrefix, time.Now().UnixMilli(), name, suffix, ext)
}

// cleanupOrphanPhoto compensates a failed intake: the uploaded photo must
// not outlive the user row that never landed. Best-effort only.
func (s *MembershipService) cleanupOrphanPhoto(ctx context.Context, photoKey *string) {
	if photoKey == nil {
		return
	}
	if err := s.blobs.Delete(ctx, *photoKey); err != nil {
		s.logger.Warn("failed to clean up orphan photo",
			zap.String("key", *photoKey), zap.Error(err))
	}
}

func (s *MembershipService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
