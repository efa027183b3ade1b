// internal/server/handlers.go
package server

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"banking-assistant/internal/assistant/speech"
	"banking-assistant/internal/common/metrics"
	"banking-assistant/internal/common/validation"
	"banking-assistant/internal/models"
)

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	metrics.RequestsInFlight.WithLabelValues("chat").Inc()
	defer metrics.RequestsInFlight.WithLabelValues("chat").Dec()

	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if vr := validation.ValidateChatInput(req.Message, req.Language); !vr.Valid {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"status": models.StatusError,
			"errors": vr.Errors,
		})
		return
	}

	started := time.Now()
	result := s.orchestrator.Process(r.Context(), req)
	if s.obs != nil {
		s.obs.RecordRequest(r.Context(), result.Status)
		s.obs.RecordDuration(r.Context(), time.Since(started), result.Status)
	}

	status := http.StatusOK
	if result.Status == models.StatusError {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, result)
}

// handleVoiceChat transcribes audio, runs the text pipeline and returns both
// the text response and its synthesized audio.
func (s *Server) handleVoiceChat(w http.ResponseWriter, r *http.Request) {
	metrics.RequestsInFlight.WithLabelValues("voice").Inc()
	defer metrics.RequestsInFlight.WithLabelValues("voice").Dec()

	if s.speech == nil {
		writeError(w, http.StatusServiceUnavailable, "speech service not configured")
		return
	}

	var req struct {
		SessionID   string `json:"sessionId"`
		AudioBase64 string `json:"audioBase64"`
		Language    string `json:"language,omitempty"`
		MobileNo    string `json:"mobileNo,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	audio, err := base64.StdEncoding.DecodeString(req.AudioBase64)
	if err != nil || len(audio) == 0 {
		writeError(w, http.StatusBadRequest, "audioBase64 must be non-empty base64")
		return
	}

	transcript, err := s.speech.Transcribe(r.Context(), audio, req.Language)
	if err != nil {
		s.logger.WithError(err).Error("transcription failed", map[string]interface{}{
			"session_id": req.SessionID,
		})
		writeError(w, http.StatusBadGateway, "could not transcribe audio")
		return
	}

	result := s.orchestrator.Process(r.Context(), models.ChatRequest{
		SessionID: req.SessionID,
		Message:   transcript,
		Language:  req.Language,
		MobileNo:  req.MobileNo,
	})

	response := map[string]interface{}{
		"transcript": transcript,
		"result":     result,
	}

	// Synthesis failure still returns the text result.
	if audioOut, err := s.speech.Synthesize(r.Context(), result.Response, req.Language); err == nil {
		response["audioBase64"] = base64.StdEncoding.EncodeToString(audioOut)
	} else {
		s.logger.WithError(err).Warn("speech synthesis failed", map[string]interface{}{
			"session_id": req.SessionID,
		})
	}

	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleGetConversation(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")
	entries, err := s.history.History(r.Context(), sessionID)
	if err != nil {
		s.writeStoreError(w, err, "conversation_fetch", "could not load conversation")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"sessionId":    sessionID,
		"conversation": entries,
	})
}

func (s *Server) handleClearConversation(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")
	cleared, err := s.history.Clear(r.Context(), sessionID)
	if err != nil {
		s.writeStoreError(w, err, "conversation_clear", "could not clear conversation")
		return
	}
	if !cleared {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{
			"message":   "Session not found",
			"sessionId": sessionID,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":   "Conversation cleared",
		"sessionId": sessionID,
	})
}

func (s *Server) handleLanguages(w http.ResponseWriter, r *http.Request) {
	names := make([]string, 0, len(speech.SupportedLanguages))
	for name := range speech.SupportedLanguages {
		names = append(names, name)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"supported_languages": names,
		"language_codes":      speech.SupportedLanguages,
	})
}

func (s *Server) handleSaveQuestion(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MobileNo   string `json:"mobileNo"`
		Question   string `json:"question"`
		NotifyUser bool   `json:"notifyUser"`
		SessionID  string `json:"sessionId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Question == "" {
		writeError(w, http.StatusBadRequest, "question is required")
		return
	}

	q := models.UnansweredQuestion{
		SessionID:  req.SessionID,
		MobileNo:   req.MobileNo,
		Question:   req.Question,
		NotifyUser: req.NotifyUser,
	}
	if q.MobileNo == "" {
		q.MobileNo = "unknown"
	}

	if err := s.questions.Save(r.Context(), q); err != nil {
		s.writeStoreError(w, err, "question_save", "could not save question")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Question saved for admin review",
	})
}

func (s *Server) handleListQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := s.questions.List(r.Context(), r.URL.Query().Get("status"), 0)
	if err != nil {
		s.writeStoreError(w, err, "question_list", "could not list questions")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"questions": questions,
	})
}

func (s *Server) handleAnswerQuestion(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req struct {
		Answer     string `json:"answer"`
		AnsweredBy string `json:"answeredBy"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Answer == "" {
		writeError(w, http.StatusBadRequest, "answer is required")
		return
	}

	q, err := s.questions.Answer(r.Context(), id, req.Answer, req.AnsweredBy)
	if err != nil {
		s.writeStoreError(w, err, "question_answer", "could not record answer")
		return
	}
	if q == nil {
		writeError(w, http.StatusNotFound, "question not found")
		return
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyAnswered(r.Context(), *q); err != nil {
			s.logger.WithError(err).Warn("answer notification failed", map[string]interface{}{
				"question_id": q.ID,
			})
		}
	}

	writeJSON(w, http.StatusOK, q)
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID   string `json:"userId"`
		Name     string `json:"name"`
		MobileNo string `json:"mobileNo"`
		Email    string `json:"email"`
		Language string `json:"language"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.MobileNo != "" && !validation.ValidatePhone(req.MobileNo) {
		writeError(w, http.StatusBadRequest, "invalid mobile number")
		return
	}

	sess, err := s.sessions.Create(r.Context(), models.Session{
		User: models.User{
			ID:       req.UserID,
			Name:     req.Name,
			MobileNo: req.MobileNo,
			Email:    req.Email,
		},
		Language: req.Language,
	})
	if err != nil {
		s.writeStoreError(w, err, "session_create", "could not create session")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"session": sess})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeStoreError(w, err, "session_get", "could not load session")
		return
	}
	if sess == nil {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"session": sess})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeStoreError logs through the shared error handler and surfaces the
// mapped HTTP status with a stable error code.
func (s *Server) writeStoreError(w http.ResponseWriter, err error, stage, message string) {
	stdErr, status := s.errs.Handle(err, stage)
	writeJSON(w, status, map[string]interface{}{
		"status": models.StatusError,
		"error":  message,
		"code":   stdErr.Code,
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"status": models.StatusError,
		"error":  message,
	})
}
