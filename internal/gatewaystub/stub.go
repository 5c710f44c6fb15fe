// Package gatewaystub runs an in-process stand-in for the model gateway.
// It records every request and answers with canned replies.
package gatewaystub

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Reply is what the stub answers on one route.
type Reply struct {
	Status int
	Body   string
	// Location is sent as the Location header, for redirect replies.
	Location string
	// Delay holds the reply back; the handler gives up early if the client goes away.
	Delay time.Duration
}

// Request is one recorded inbound call.
type Request struct {
	Path   string
	Header http.Header
	Body   []byte
}

type Stub struct {
	srv *httptest.Server

	mu       sync.Mutex
	replies  map[string]Reply
	requests []Request
}

var (
	DefaultChatReply  = Reply{Status: http.StatusOK, Body: `{"content":"ok"}`}
	DefaultEmbedReply = Reply{Status: http.StatusOK, Body: `{"embeddings":[]}`}
)

// New starts the stub; call Close when done.
func New() *Stub {
	gin.SetMode(gin.TestMode)
	s := &Stub{
		replies: map[string]Reply{
			"/chat":  DefaultChatReply,
			"/embed": DefaultEmbedReply,
		},
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.POST("/chat", s.handle)
	router.POST("/embed", s.handle)
	s.srv = httptest.NewServer(router)
	return s
}

func (s *Stub) URL() string { return s.srv.URL }

func (s *Stub) Close() { s.srv.Close() }

func (s *Stub) OnChat(r Reply)  { s.set("/chat", r) }
func (s *Stub) OnEmbed(r Reply) { s.set("/embed", r) }

func (s *Stub) set(path string, r Reply) {
	if r.Status == 0 {
		r.Status = http.StatusOK
	}
	s.mu.Lock()
	s.replies[path] = r
	s.mu.Unlock()
}

// Requests returns a copy of everything received so far.
func (s *Stub) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Last returns the most recent request; ok is false when none arrived.
func (s *Stub) Last() (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Request{}, false
	}
	return s.requests[len(s.requests)-1], true
}

func (s *Stub) handle(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}
	path := c.FullPath()
	s.mu.Lock()
	s.requests = append(s.requests, Request{Path: path, Header: c.Request.Header.Clone(), Body: body})
	reply := s.replies[path]
	s.mu.Unlock()

	if reply.Delay > 0 {
		select {
		case <-time.After(reply.Delay):
		case <-c.Request.Context().Done():
			return
		}
	}
	if reply.Location != "" {
		c.Header("Location", reply.Location)
	}
	c.Data(reply.Status, "application/json", []byte(reply.Body))
}
