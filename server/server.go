// Package server serves tool calls over HTTP.
//
//	POST /tool    execute a tool call (JSON or msgpack body)
//	GET  /schema  tool schema for agent registration
//	GET  /health  liveness check
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dimfeld/httptreemux"
	"github.com/gofrs/uuid"
	"github.com/gorilla/handlers"
	"github.com/njchilds90/polyrat/config"
	"github.com/njchilds90/polyrat/logger"
	"github.com/njchilds90/polyrat/tool"
	"github.com/pkg/errors"
	"github.com/unrolled/render"
	"github.com/vmihailenco/msgpack/v4"
)

const (
	ContentMsgpack  = "application/msgpack"
	HeaderRequestID = "X-Request-Id"
)

type R struct {
	Dispatcher   *tool.Dispatcher
	MaxBodyBytes int64
	render       *render.Render
}

func NewRouter(d *tool.Dispatcher, maxBodyBytes int) *httptreemux.TreeMux {
	if maxBodyBytes <= 0 {
		maxBodyBytes = config.DefaultMaxBodyBytes
	}
	router := httptreemux.New()
	impl := &R{Dispatcher: d, MaxBodyBytes: int64(maxBodyBytes), render: render.New()}
	router.POST("/tool", impl.tool)
	router.GET("/schema", impl.schema)
	router.GET("/health", impl.health)
	registerHandlers(router, impl.render)
	return router
}

func registerHandlers(router *httptreemux.TreeMux, rdr *render.Render) {
	router.MethodNotAllowedHandler = func(w http.ResponseWriter, r *http.Request, _ map[string]httptreemux.HandlerFunc) {
		rdr.JSON(w, http.StatusMethodNotAllowed, map[string]interface{}{"error": "method not allowed"})
	}
	router.NotFoundHandler = func(w http.ResponseWriter, r *http.Request) {
		rdr.JSON(w, http.StatusNotFound, map[string]interface{}{"error": "not found"})
	}
	router.PanicHandler = func(w http.ResponseWriter, r *http.Request, rcv interface{}) {
		logger.Errorf("panic in %s %s: %v", r.Method, r.URL.Path, rcv)
		rdr.JSON(w, http.StatusInternalServerError, map[string]interface{}{"error": "internal server error"})
	}
}

func isMsgpack(contentType string) bool {
	return strings.Contains(contentType, "msgpack")
}

func (impl *R) decode(r *http.Request) (tool.ToolRequest, error) {
	var req tool.ToolRequest
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return req, errors.Wrap(err, "read body")
	}
	if isMsgpack(r.Header.Get("Content-Type")) {
		err = msgpack.Unmarshal(body, &req)
		return req, errors.Wrap(err, "invalid msgpack")
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return req, errors.Wrap(err, "invalid JSON")
	}
	if dec.More() {
		return req, errors.New("invalid JSON: trailing data")
	}
	return req, nil
}

func (impl *R) tool(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	r.Body = http.MaxBytesReader(w, r.Body, impl.MaxBodyBytes)
	defer r.Body.Close()

	req, err := impl.decode(r)
	if err != nil {
		impl.render.JSON(w, http.StatusBadRequest, map[string]interface{}{"error": err.Error()})
		return
	}
	started := time.Now()
	resp := impl.Dispatcher.HandleToolCall(req)
	logger.Verbosef("tool %s %s in %s", req.Tool, w.Header().Get(HeaderRequestID), time.Since(started))

	if !isMsgpack(r.Header.Get("Accept")) {
		impl.render.JSON(w, http.StatusOK, resp)
		return
	}
	b, err := msgpack.Marshal(resp)
	if err != nil {
		impl.render.JSON(w, http.StatusInternalServerError, map[string]interface{}{"error": err.Error()})
		return
	}
	w.Header().Set("Content-Type", ContentMsgpack)
	impl.render.Data(w, http.StatusOK, b)
}

func (impl *R) schema(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	impl.render.Data(w, http.StatusOK, []byte(tool.Spec()))
}

func (impl *R) health(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	impl.render.JSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"version": config.BuildVersion,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

func withRequestID(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if id == "" {
			id = uuid.Must(uuid.NewV4()).String()
		}
		w.Header().Set(HeaderRequestID, id)
		handler.ServeHTTP(w, r)
	})
}

type logWriter struct{}

func (logWriter) Write(p []byte) (int, error) {
	logger.Printf("%s", strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

type recoveryLogger struct{}

func (recoveryLogger) Println(v ...interface{}) {
	logger.Errorf("%s", fmt.Sprintln(v...))
}

// NewHandler wraps the router with request ids, access logging and panic
// recovery.
func NewHandler(d *tool.Dispatcher, maxBodyBytes int) http.Handler {
	var handler http.Handler = NewRouter(d, maxBodyBytes)
	handler = withRequestID(handler)
	handler = handlers.LoggingHandler(logWriter{}, handler)
	handler = handlers.ProxyHeaders(handler)
	return handlers.RecoveryHandler(handlers.RecoveryLogger(recoveryLogger{}))(handler)
}

// StartHTTP serves until ctx is done, then shuts down gracefully.
func StartHTTP(ctx context.Context, d *tool.Dispatcher, conf *config.Custom) error {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", conf.Server.Port),
		Handler:           NewHandler(d, conf.Server.MaxBodyBytes),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       time.Duration(conf.Server.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(conf.Server.WriteTimeout) * time.Second,
		IdleTimeout:       time.Duration(conf.Server.IdleTimeout) * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Printf("polyrat server listening on %s", server.Addr)
		errc <- server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdown)
	}
}
