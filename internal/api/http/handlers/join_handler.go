package handlers

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/club-service/internal/api/dto"
	"github.com/spec-kit/club-service/internal/service"
	apperrors "github.com/spec-kit/club-service/pkg/util/errorutil"
)

// JoinHandler receives membership applications.
type JoinHandler struct {
	membership *service.MembershipService
	maxUpload  int64
}

// NewJoinHandler constructs handler.
func NewJoinHandler(membershipService *service.MembershipService, maxUploadBytes int64) *JoinHandler {
	return &JoinHandler{membership: membershipService, maxUpload: maxUploadBytes}
}

// Submit handles POST /api/join. The form arrives as multipart because it
// may carry a profile photo.
func (h *JoinHandler) Submit(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return apperrors.NewValidationError("formulario inválido", nil)
	}

	input := service.ApplicationInput{
		FullName:        formString(form, "fullName"),
		IDCard:          formString(form, "idCard"),
		Email:           formString(form, "email"),
		Password:        formString(form, "password"),
		Phone:           formOptString(form, "phone"),
		Gender:          formOptString(form, "gender"),
		Province:        formOptString(form, "province"),
		BirthDate:       formOptString(form, "birthDate"),
		BloodType:       formOptString(form, "bloodType"),
		Allergies:       formOptString(form, "allergies"),
		Diseases:        formOptString(form, "diseases"),
		PastInjuries:    formOptString(form, "pastInjuries"),
		CurrentInjuries: formOptString(form, "currentInjuries"),
		Height:          formOptFloat(form, "height"),
		Weight:          formOptFloat(form, "weight"),
		FatPercentage:   formOptFloat(form, "fatPercentage"),
		FootwearType:    formOptString(form, "footwearType"),
		Record5K:        formOptString(form, "record5k"),
		Record10K:       formOptString(form, "record10k"),
		Record21K:       formOptString(form, "record21k"),
		Record42K:       formOptString(form, "record42k"),
		RecordWkg:       formOptString(form, "recordWkg"),
		StrydUser:       formOptString(form, "strydUser"),
		FinalSurgeUser:  formOptString(form, "finalSurgeUser"),

		TrainingGoals:         formValues(form, "trainingGoals"),
		ShortTermGoals:        formOptString(form, "shortTermGoals"),
		MidTermGoals:          formOptString(form, "midTermGoals"),
		LongTermGoals:         formOptString(form, "longTermGoals"),
		TrainingDaysPerWeek:   formOptInt(form, "trainingDaysPerWeek"),
		HasTrainedWithStryd:   formBool(form, "hasTrainedWithStryd"),
		HasStructuredTraining: formBool(form, "hasStructuredTraining"),
		DiscoveryMethod:       formOptString(form, "discoveryMethod"),
		IsAlreadyMember:       formBool(form, "isAlreadyMember"),
	}

	if input.FullName == "" || input.IDCard == "" || input.Email == "" || input.Password == "" {
		return apperrors.NewValidationError("fullName, idCard, email y password son obligatorios", nil)
	}

	photo, err := h.readPhoto(form)
	if err != nil {
		return err
	}

	result, err := h.membership.SubmitApplication(c.UserContext(), input, photo)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.JoinResponse{
		Message:  "Registro completado con éxito",
		UserID:   result.UserID,
		PhotoKey: result.PhotoKey,
	})
}

func (h *JoinHandler) readPhoto(form *multipart.Form) (*service.Photo, error) {
	files := form.File["photo"]
	if len(files) == 0 {
		return nil, nil
	}
	header := files[0]
	if h.maxUpload > 0 && header.Size > h.maxUpload {
		return nil, apperrors.NewValidationError("la foto supera el tamaño máximo permitido", nil)
	}
	file, err := header.Open()
	if err != nil {
		return nil, apperrors.NewValidationError("no se pudo leer la foto", nil)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &service.Photo{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func formString(form *multipart.Form, key string) string {
	values := form.Value[key]
	if len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0])
}

func formOptString(form *multipart.Form, key string) *string {
	value := formString(form, key)
	if value == "" {
		return nil
	}
	return &value
}

// formValues returns every value submitted under key, so multi-select
// fields like trainingGoals keep all their choices.
func formValues(form *multipart.Form, key string) []string {
	var out []string
	for _, v := range form.Value[key] {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func formOptFloat(form *multipart.Form, key string) *float64 {
	value := formString(form, key)
	if value == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &parsed
}

func formOptInt(form *multipart.Form, key string) *int {
	value := formString(form, key)
	if value == "" {
		return nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return nil
	}
	return &parsed
}

func formBool(form *multipart.Form, key string) bool {
	switch strings.ToLower(formString(form, key)) {
	case "true", "1", "on", "yes", "sí", "si":
		return true
	}
	return false
}
