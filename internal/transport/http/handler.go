package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"olympiad-quiz-service/internal/app"
	"olympiad-quiz-service/internal/domain"
)

// Handler exposes the quiz use cases over HTTP.
type Handler struct {
	daily    *app.DailyQuizService
	configs  *app.ConfigService
	attempts *app.AttemptService
	feed     *app.AttemptFeed
	log      *zap.Logger
	upgrader websocket.Upgrader
}

func NewHandler(daily *app.DailyQuizService, configs *app.ConfigService, attempts *app.AttemptService, feed *app.AttemptFeed, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		daily:    daily,
		configs:  configs,
		attempts: attempts,
		feed:     feed,
		log:      log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Routes builds the router wrapped in CORS for the browser UI.
func (h *Handler) Routes(allowedOrigins []string) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	q := r.PathPrefix("/quiz").Subrouter()
	q.HandleFunc("/daily-questions", h.DailyQuestions).Methods(http.MethodGet)
	q.HandleFunc("/config", h.GetConfig).Methods(http.MethodGet)
	q.HandleFunc("/config", h.UpdateConfig).Methods(http.MethodPut)
	q.HandleFunc("/submit", h.Submit).Methods(http.MethodPost)
	q.HandleFunc("/attempts", h.ListAttempts).Methods(http.MethodGet)

	r.HandleFunc("/ws/attempts", h.ServeAttemptFeed)

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})
	return c.Handler(r)
}

type dailyQuestionsResponse struct {
	Success   bool                  `json:"success"`
	Questions []domain.QuestionView `json:"questions"`
	Count     int                   `json:"count"`
	Date      string                `json:"date"`
	Seed      int64                 `json:"seed"`
	Cached    bool                  `json:"cached"`
	Error     string                `json:"error,omitempty"`
}

type configResponse struct {
	Success bool              `json:"success"`
	Config  domain.QuizConfig `json:"config"`
}

type attemptResponse struct {
	Success bool               `json:"success"`
	Attempt domain.QuizAttempt `json:"attempt"`
}

type attemptsResponse struct {
	Success  bool                 `json:"success"`
	Date     string               `json:"date"`
	Attempts []domain.QuizAttempt `json:"attempts"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// DailyQuestions serves GET /quiz/daily-questions?language=<lang>.
func (h *Handler) DailyQuestions(w http.ResponseWriter, r *http.Request) {
	quiz, err := h.daily.GetDailyQuiz(r.Context(), r.URL.Query().Get("language"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	sel := quiz.Selection
	writeJSON(w, http.StatusOK, dailyQuestionsResponse{
		Success:   true,
		Questions: sel.Questions,
		Count:     len(sel.Questions),
		Date:      sel.Date,
		Seed:      sel.Seed,
		Cached:    quiz.Cached,
		Error:     quiz.Message,
	})
}

// GetConfig serves GET /quiz/config.
func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.configs.Get(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, configResponse{Success: true, Config: cfg})
}

// UpdateConfig serves PUT /quiz/config.
func (h *Handler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	var cfg domain.QuizConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid config payload"})
		return
	}
	updated, err := h.configs.Update(r.Context(), cfg)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, configResponse{Success: true, Config: updated})
}

// Submit serves POST /quiz/submit.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var sub domain.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid submission payload"})
		return
	}
	attempt, err := h.attempts.Submit(r.Context(), sub)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, attemptResponse{Success: true, Attempt: attempt})
}

// ListAttempts serves GET /quiz/attempts?date=YYYY-MM-DD (defaults to today).
func (h *Handler) ListAttempts(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = h.daily.Today()
	}
	attempts, err := h.attempts.Attempts(r.Context(), date)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, attemptsResponse{Success: true, Date: date, Attempts: attempts})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidConfig),
		errors.Is(err, domain.ErrInvalidSubmission),
		errors.Is(err, domain.ErrInvalidDate):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrAttemptExists):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		h.log.Error("request failed", zap.Error(err))
		writeJSON(w, status, errorResponse{Error: "internal error"})
		return
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
