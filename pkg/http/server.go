package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"

	"github.com/fasthttp/router"
	"github.com/spiceai/specs/pkg/api"
	"github.com/spiceai/specs/pkg/loggers"
	"github.com/spiceai/specs/pkg/spec"
	"github.com/spiceai/specs/pkg/specfile"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

type ServerConfig struct {
	Port uint
}

type server struct {
	config ServerConfig

	mu    sync.RWMutex
	specs *specfile.SpecSet

	fastServer *fasthttp.Server
}

var (
	zaplog *zap.Logger = loggers.ZapLogger()
)

func NewServer(port uint, specs *specfile.SpecSet) *server {
	return &server{
		config: ServerConfig{
			Port: port,
		},
		specs: specs,
	}
}

// Replaces the served specs, e.g. after a manifest changed
func (server *server) SetSpecs(specs *specfile.SpecSet) {
	server.mu.Lock()
	defer server.mu.Unlock()
	server.specs = specs
}

func (server *server) Specs() *specfile.SpecSet {
	server.mu.RLock()
	defer server.mu.RUnlock()
	return server.specs
}

func (server *server) lookup(ctx *fasthttp.RequestCtx) (string, spec.Spec, bool) {
	key, _ := ctx.UserValue("key").(string)
	s, ok := server.Specs().Get(key)
	if !ok {
		ctx.Response.SetStatusCode(http.StatusNotFound)
		fmt.Fprintf(ctx, "spec '%s' not found", key)
		return key, nil, false
	}
	return key, s, true
}

func healthHandler(ctx *fasthttp.RequestCtx) {
	fmt.Fprintf(ctx, "ok")
}

func (server *server) apiGetSpecsHandler(ctx *fasthttp.RequestCtx) {
	writeJson(ctx, api.NewSpecs(server.Specs()))
}

func (server *server) apiGetSpecHandler(ctx *fasthttp.RequestCtx) {
	key, s, ok := server.lookup(ctx)
	if !ok {
		return
	}
	writeJson(ctx, api.NewSpec(key, s))
}

// Formats the JSON value in the body as the display string of the spec
func (server *server) apiFormatHandler(ctx *fasthttp.RequestCtx) {
	_, s, ok := server.lookup(ctx)
	if !ok {
		return
	}

	value, err := api.DecodeValue(s, ctx.Request.Body())
	if err != nil {
		ctx.Response.SetStatusCode(http.StatusBadRequest)
		ctx.Response.SetBodyString(err.Error())
		return
	}

	str, err := s.AsStr(value)
	if err != nil {
		ctx.Response.SetStatusCode(http.StatusBadRequest)
		ctx.Response.SetBodyString(err.Error())
		return
	}

	ctx.Response.Header.SetContentType("text/plain; charset=utf-8")
	ctx.Response.SetBodyString(str)
}

// Parses the display string in the body into the JSON value of the spec
func (server *server) apiParseHandler(ctx *fasthttp.RequestCtx) {
	_, s, ok := server.lookup(ctx)
	if !ok {
		return
	}

	value, err := s.AsVal(string(ctx.Request.Body()))
	if err != nil {
		ctx.Response.SetStatusCode(http.StatusBadRequest)
		ctx.Response.SetBodyString(err.Error())
		return
	}

	data, err := api.EncodeValue(value)
	if err != nil {
		zaplog.Sugar().Error(err)
		ctx.Response.SetStatusCode(http.StatusInternalServerError)
		ctx.Response.SetBodyString(err.Error())
		return
	}

	ctx.Response.Header.SetContentType("application/json")
	ctx.Response.SetBody(data)
}

// Describes the spec a transformation would produce
func (server *server) apiDeriveHandler(ctx *fasthttp.RequestCtx) {
	key, s, ok := server.lookup(ctx)
	if !ok {
		return
	}

	var request api.DeriveRequest
	err := json.Unmarshal(ctx.Request.Body(), &request)
	if err != nil {
		ctx.Response.SetStatusCode(http.StatusBadRequest)
		ctx.Response.SetBodyString(err.Error())
		return
	}

	derived, err := spec.Derive(s, request.Method, request.How, request.Params())
	if err != nil {
		writeSpecError(ctx, err)
		return
	}

	writeJson(ctx, api.NewSpec(key, derived))
}

// Describes the spec a binary operation with another served spec would produce
func (server *server) apiCombineHandler(ctx *fasthttp.RequestCtx) {
	key, s, ok := server.lookup(ctx)
	if !ok {
		return
	}

	var request api.CombineRequest
	err := json.Unmarshal(ctx.Request.Body(), &request)
	if err != nil {
		ctx.Response.SetStatusCode(http.StatusBadRequest)
		ctx.Response.SetBodyString(err.Error())
		return
	}

	other, ok := server.Specs().Get(request.Other)
	if !ok {
		ctx.Response.SetStatusCode(http.StatusNotFound)
		fmt.Fprintf(ctx, "spec '%s' not found", request.Other)
		return
	}

	combined, err := spec.Combine(s, other, request.Method)
	if err != nil {
		writeSpecError(ctx, err)
		return
	}

	writeJson(ctx, api.NewSpec(api.CombinedKey(key, request.Method), combined))
}

func writeSpecError(ctx *fasthttp.RequestCtx, err error) {
	if spec.IsNotSupported(err) {
		ctx.Response.SetStatusCode(http.StatusUnprocessableEntity)
	} else {
		ctx.Response.SetStatusCode(http.StatusBadRequest)
	}
	ctx.Response.SetBodyString(err.Error())
}

func writeJson(ctx *fasthttp.RequestCtx, data interface{}) {
	response, err := json.Marshal(data)
	if err != nil {
		zaplog.Sugar().Error(err)
		ctx.Response.SetStatusCode(http.StatusInternalServerError)
		ctx.Response.SetBodyString(err.Error())
		return
	}

	ctx.Response.Header.SetContentType("application/json")
	ctx.Response.SetBody(response)
}

func (server *server) Router() *router.Router {
	r := router.New()
	r.GET("/health", healthHandler)

	v01 := r.Group("/api/v0.1")
	{
		v01.GET("/specs", server.apiGetSpecsHandler)
		v01.GET("/specs/{key}", server.apiGetSpecHandler)
		v01.POST("/specs/{key}/format", server.apiFormatHandler)
		v01.POST("/specs/{key}/parse", server.apiParseHandler)
		v01.POST("/specs/{key}/derive", server.apiDeriveHandler)
		v01.POST("/specs/{key}/combine", server.apiCombineHandler)
	}

	return r
}

// Serves on ln until Shutdown is called
func (server *server) Serve(ln net.Listener) error {
	serverLogger, err := zap.NewStdLogAt(zaplog, zap.DebugLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	server.mu.Lock()
	server.fastServer = &fasthttp.Server{
		Handler: server.Router().Handler,
		Logger:  serverLogger,
	}
	fastServer := server.fastServer
	server.mu.Unlock()

	return fastServer.Serve(ln)
}

// Listens on the configured port in the background
func (server *server) Start() error {
	ln, err := net.Listen("tcp4", fmt.Sprintf(":%d", server.config.Port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", server.config.Port, err)
	}

	zaplog.Info("serving specs", zap.Uint("port", server.config.Port), zap.Int("specs", server.Specs().Len()))

	go func() {
		if err := server.Serve(ln); err != nil {
			log.Fatal(err)
		}
	}()

	return nil
}

func (server *server) Shutdown() error {
	server.mu.RLock()
	fastServer := server.fastServer
	server.mu.RUnlock()

	if fastServer == nil {
		return errors.New("server is not running")
	}
	return fastServer.Shutdown()
}
