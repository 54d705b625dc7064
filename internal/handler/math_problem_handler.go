package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/mathsession-backend/internal/model"
	"github.com/stemsi/mathsession-backend/internal/response"
	"github.com/stemsi/mathsession-backend/internal/service"
	"github.com/stemsi/mathsession-backend/internal/validator"
)

type MathProblemHandler struct {
	sessionService *service.ProblemSessionService
	revealAnswer   bool
}

func NewMathProblemHandler(sessionService *service.ProblemSessionService, revealAnswer bool) *MathProblemHandler {
	return &MathProblemHandler{sessionService: sessionService, revealAnswer: revealAnswer}
}

type sessionURI struct {
	ID string `uri:"id" binding:"required,max=64"`
}

// CreateSession godoc
// GET /api/math-problem
// POST /api/v1/sessions
func (h *MathProblemHandler) CreateSession(c *gin.Context) {
	session, err := h.sessionService.Create(c.Request.Context())
	if err != nil {
		failFromService(c, err)
		return
	}

	resp := model.CreateSessionResponse{
		Success:     true,
		SessionID:   session.ID.String(),
		ProblemText: session.ProblemText,
	}
	if h.revealAnswer {
		answer := session.CorrectAnswer
		resp.FinalAnswer = &answer
	}
	response.Success(c, http.StatusOK, resp)
}

// SubmitAnswer godoc
// POST /api/math-problem
func (h *MathProblemHandler) SubmitAnswer(c *gin.Context) {
	var req model.SubmitAnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrInvalidPayload, fields)
		return
	}
	h.submit(c, req)
}

// SubmitForSession godoc
// POST /api/v1/sessions/:id/submissions
// The path id takes precedence over any session_id in the body.
func (h *MathProblemHandler) SubmitForSession(c *gin.Context) {
	var uri sessionURI
	if fields := validator.BindURI(c, &uri); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	var req model.SubmitAnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrInvalidPayload, fields)
		return
	}
	req.SessionID = uri.ID
	h.submit(c, req)
}

// ListSubmissions godoc
// GET /api/v1/sessions/:id/submissions
func (h *MathProblemHandler) ListSubmissions(c *gin.Context) {
	var uri sessionURI
	if fields := validator.BindURI(c, &uri); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	subs, err := h.sessionService.ListSubmissions(c.Request.Context(), uri.ID)
	if err != nil {
		failFromService(c, err)
		return
	}

	response.Success(c, http.StatusOK, model.SubmissionHistoryResponse{
		Success:     true,
		SessionID:   uri.ID,
		Submissions: subs,
	})
}

func (h *MathProblemHandler) submit(c *gin.Context, req model.SubmitAnswerRequest) {
	result, err := h.sessionService.Submit(c.Request.Context(), req)
	if err != nil {
		failFromService(c, err)
		return
	}

	response.Success(c, http.StatusOK, model.SubmitAnswerResponse{
		Success:       true,
		IsCorrect:     result.Submission.IsCorrect,
		Feedback:      result.Submission.FeedbackText,
		CorrectAnswer: result.CorrectAnswer,
		UserAnswer:    result.Submission.UserAnswer,
	})
}

// failFromService maps a service error kind to an HTTP status and error code.
// Client faults keep the service message; server faults use the generic one.
func failFromService(c *gin.Context, err error) {
	status, code := statusForKind(service.KindOf(err))

	var svcErr *service.Error
	if errors.As(err, &svcErr) && svcErr.ClientFault() {
		response.FailWithMessage(c, status, code, svcErr.Message)
		return
	}
	response.Fail(c, status, code)
}

func statusForKind(kind service.Kind) (int, response.ErrCode) {
	switch kind {
	case service.KindValidation:
		return http.StatusBadRequest, response.ErrValidation
	case service.KindSessionNotFound:
		return http.StatusNotFound, response.ErrSessionNotFound
	case service.KindConfiguration:
		return http.StatusInternalServerError, response.ErrConfiguration
	case service.KindGenerationParse:
		return http.StatusInternalServerError, response.ErrGenerationParse
	case service.KindGenerationInvalid:
		return http.StatusInternalServerError, response.ErrGenerationInvalid
	case service.KindGenerationUnavailable:
		return http.StatusBadGateway, response.ErrGenerationUnavailable
	case service.KindFeedbackGeneration:
		return http.StatusInternalServerError, response.ErrFeedbackGeneration
	case service.KindPersistence:
		return http.StatusInternalServerError, response.ErrPersistence
	default:
		return http.StatusInternalServerError, response.ErrInternal
	}
}
