// internal/server/handlers.go
package server

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"conference-outreach/internal/common/errors"
	"conference-outreach/internal/models"
	"conference-outreach/internal/stages/intake"
	"conference-outreach/internal/workflow"
)

func (s *Server) submitParticipants(c *gin.Context) {
	var input intake.Input
	if err := c.ShouldBindJSON(&input); err != nil {
		s.fail(c, errors.NewValidationError(err.Error()))
		return
	}
	if input.Event == "" {
		s.fail(c, errors.NewValidationError("event_name is required"))
		return
	}

	out, err := s.intake.Execute(c.Request.Context(), &input)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"event_name":    input.Event,
		"registered":    len(out.Participants),
		"from_fallback": out.FromFallback,
		"participants":  out.Participants,
	})
}

func (s *Server) listParticipants(c *gin.Context) {
	event := c.Query("event")
	if event == "" {
		s.fail(c, errors.NewValidationError("event query parameter is required"))
		return
	}

	participants, err := s.intake.List(c.Request.Context(), event)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"event_name":   event,
		"participants": participants,
	})
}

func (s *Server) startWorkflow(c *gin.Context) {
	payload, input, err := decodeWorkflowInput(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	if err := validateSchema(workflowStartSchema, payload); err != nil {
		s.fail(c, err)
		return
	}

	job, err := s.jobs.Start(c.Request.Context(), input)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusAccepted, job)
}

func (s *Server) getJob(c *gin.Context) {
	job, ok := s.jobs.Get(c.Param("job_id"))
	if !ok {
		s.fail(c, errors.NewNotFoundError("job", c.Param("job_id")))
		return
	}
	c.JSON(http.StatusOK, job)
}

func (s *Server) getApprovals(c *gin.Context) {
	event := c.Query("event")
	if event == "" {
		s.fail(c, errors.NewValidationError("event query parameter is required"))
		return
	}

	if name := c.Query("participant"); name != "" {
		entry, found, err := s.approvals.GetStatus(c.Request.Context(), event, name)
		if err != nil {
			s.fail(c, err)
			return
		}
		if !found {
			s.fail(c, errors.NewNotFoundError("participant", name))
			return
		}
		c.JSON(http.StatusOK, entry)
		return
	}

	entries, err := s.listApprovals(c, event)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"event_name": event,
		"entries":    entries,
	})
}

func (s *Server) listApprovals(c *gin.Context, event string) ([]models.ApprovalEntry, error) {
	switch c.Query("status") {
	case "":
		return s.approvals.GetAll(c.Request.Context(), event)
	case string(models.StatusApproved):
		return s.approvals.GetApproved(c.Request.Context(), event)
	case string(models.StatusNeedsEdits):
		return s.approvals.GetNeedsEdits(c.Request.Context(), event)
	default:
		return nil, errors.NewValidationError("unsupported status filter")
	}
}

func (s *Server) updateApproval(c *gin.Context) {
	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		s.fail(c, errors.NewValidationError(err.Error()))
		return
	}
	if err := validateSchema(approvalUpdateSchema, payload); err != nil {
		s.fail(c, err)
		return
	}

	event, _ := payload["event_name"].(string)
	name, _ := payload["participant_name"].(string)
	status, _ := payload["status"].(string)
	feedback, _ := payload["feedback"].(string)

	updated, err := s.approvals.UpdateStatus(c.Request.Context(), event, name, models.ApprovalStatus(status), feedback)
	if err != nil {
		s.fail(c, err)
		return
	}
	if !updated {
		s.fail(c, errors.NewNotFoundError("participant", name))
		return
	}

	entry, _, err := s.approvals.GetStatus(c.Request.Context(), event, name)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (s *Server) sendMessages(c *gin.Context) {
	var req struct {
		Event       string `json:"event_name"`
		PlatformURL string `json:"platform_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, errors.NewValidationError(err.Error()))
		return
	}
	if req.Event == "" {
		s.fail(c, errors.NewValidationError("event_name is required"))
		return
	}

	result, err := s.sender.SendAllApproved(c.Request.Context(), req.Event, req.PlatformURL)
	if err != nil {
		s.fail(c, err)
		return
	}

	if err := s.notifier.BatchSent(c.Request.Context(), req.Event, result); err != nil {
		s.logger.Warn("send notification failed", map[string]interface{}{
			"event": req.Event,
			"error": err.Error(),
		})
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) generateReport(c *gin.Context) {
	var req struct {
		Event   string                 `json:"event_name"`
		User    models.UserProfile     `json:"user"`
		Samples []models.MessageSample `json:"samples"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, errors.NewValidationError(err.Error()))
		return
	}
	if req.Event == "" {
		s.fail(c, errors.NewValidationError("event_name is required"))
		return
	}

	result, err := s.reporter.CompileReport(c.Request.Context(), req.Event, req.User, req.Samples)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// decodeWorkflowInput reads the body once and produces both the raw
// payload for schema validation and the typed input.
func decodeWorkflowInput(c *gin.Context) (map[string]interface{}, *workflow.Input, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, nil, errors.NewValidationError(err.Error())
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, nil, errors.NewValidationError(err.Error())
	}

	var input workflow.Input
	if err := json.Unmarshal(raw, &input); err != nil {
		return nil, nil, errors.NewValidationError(err.Error())
	}
	return payload, &input, nil
}

// fail maps error codes onto HTTP statuses and renders the standard
// error shape.
func (s *Server) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch errors.CodeOf(err) {
	case errors.ErrCodeValidation:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeRunConflict:
		status = http.StatusConflict
	case errors.ErrCodeProviderUnavailable, errors.ErrCodeStoreUnreachable:
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"error": err.Error(),
		"code":  string(errors.CodeOf(err)),
	})
}
