package httpapi

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"expungement-interview/internal/extractor"
	"expungement-interview/internal/interview"
	"expungement-interview/internal/interviewer"
	"expungement-interview/internal/metrics"
	"expungement-interview/internal/storage"
)

const serviceName = "expungement-interview"

// ResultReader читает сохраненные анкеты
type ResultReader interface {
	LoadResult(interviewID string) (*storage.InterviewResult, error)
	ListResults() ([]string, error)
}

type Server struct {
	service  *interviewer.Service
	sessions *interviewer.Registry
	results  ResultReader
	metrics  *metrics.Metrics
}

func NewServer(service *interviewer.Service, sessions *interviewer.Registry, results ResultReader, m *metrics.Metrics) *Server {
	return &Server{
		service:  service,
		sessions: sessions,
		results:  results,
		metrics:  m,
	}
}

type createSessionRequest struct {
	State    string         `json:"state"`
	CaseData map[string]any `json:"case_data"`
}

type answerRequest struct {
	Text string `json:"text"`
}

// Router собирает маршруты API
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.GET("/health", s.health)
	if s.metrics != nil {
		r.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}

	api := r.Group("/api")
	api.GET("/questions", s.listQuestions)
	api.POST("/sessions", s.createSession)
	api.GET("/sessions/:id", s.getSession)
	api.DELETE("/sessions/:id", s.deleteSession)
	api.POST("/sessions/:id/answers", s.submitAnswer)
	api.POST("/sessions/:id/evaluate", s.evaluateSession)
	api.POST("/case-documents", s.mergeCaseDocuments)
	api.GET("/results", s.listResults)
	api.GET("/results/:id", s.getResult)

	return r
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": serviceName,
	})
}

func (s *Server) listQuestions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"questions": s.service.Questions()})
}

func (s *Server) createSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		abortWithError(c, http.StatusBadRequest, err)
		return
	}

	session, messages := s.service.Begin(req.State, req.CaseData)
	s.sessions.Put(session.ID, session)

	c.JSON(http.StatusCreated, gin.H{
		"session":  session.View(),
		"messages": messages,
	})
}

func (s *Server) getSession(c *gin.Context) {
	session, ok := s.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session.View()})
}

func (s *Server) deleteSession(c *gin.Context) {
	if _, ok := s.lookup(c); !ok {
		return
	}
	s.sessions.Delete(c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (s *Server) submitAnswer(c *gin.Context) {
	session, ok := s.lookup(c)
	if !ok {
		return
	}

	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err)
		return
	}

	reply, err := s.service.Answer(c.Request.Context(), session, req.Text)
	switch {
	case errors.Is(err, interview.ErrEmptyAnswer):
		abortWithError(c, http.StatusUnprocessableEntity, err)
		return
	case errors.Is(err, interview.ErrInterviewComplete):
		abortWithError(c, http.StatusConflict, err)
		return
	case err != nil:
		abortWithError(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reply":   reply,
		"session": session.View(),
	})
}

func (s *Server) evaluateSession(c *gin.Context) {
	session, ok := s.lookup(c)
	if !ok {
		return
	}

	decision, err := s.service.Evaluate(c.Request.Context(), session)
	switch {
	case errors.Is(err, interviewer.ErrNotComplete):
		abortWithError(c, http.StatusConflict, err)
		return
	case err != nil:
		abortWithError(c, http.StatusBadGateway, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"decision": decision})
}

func (s *Server) mergeCaseDocuments(c *gin.Context) {
	var raw map[string]extractor.Document
	if err := c.ShouldBindJSON(&raw); err != nil {
		abortWithError(c, http.StatusBadRequest, err)
		return
	}

	docs := make(extractor.Documents, len(raw))
	for name, doc := range raw {
		src, ok := extractor.ParseSource(name)
		if !ok {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "неизвестный источник документа: " + name})
			return
		}
		if doc != nil {
			docs[src] = doc
		}
	}

	merged, err := extractor.MergeDocuments(docs)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err)
		return
	}

	c.JSON(http.StatusOK, merged)
}

func (s *Server) listResults(c *gin.Context) {
	ids, err := s.results.ListResults()
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": ids})
}

func (s *Server) getResult(c *gin.Context) {
	result, err := s.results.LoadResult(c.Param("id"))
	switch {
	case errors.Is(err, storage.ErrResultNotFound):
		abortWithError(c, http.StatusNotFound, err)
		return
	case err != nil:
		abortWithError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) lookup(c *gin.Context) (*interviewer.Session, bool) {
	session, err := s.sessions.Get(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusNotFound, err)
		return nil, false
	}
	return session, true
}

func abortWithError(c *gin.Context, status int, err error) {
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("Ошибка обработки запроса")
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

// requestLogger пишет каждый запрос в zerolog
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("HTTP запрос")
	}
}
