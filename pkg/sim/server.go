package sim

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/getregsim/regsim/pkg/catalog"
	"github.com/getregsim/regsim/pkg/lifecycle"
	"github.com/getregsim/regsim/pkg/logging"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"
)

// methodKinds maps streaming method names to the operation kind whose
// script they run. A streaming method added to the proto without an
// entry here fails fast at call time.
var methodKinds = map[string]lifecycle.Kind{
	"RegisterService": lifecycle.KindServiceRegistration,
	"RegisterModule":  lifecycle.KindModuleRegistration,
}

// Server is the streaming lifecycle simulator: a gRPC server that runs
// timed phase scripts over server streams and answers the static
// discovery calls from an in-memory snapshot.
type Server struct {
	config     *Config
	schema     *Schema
	scripts    *lifecycle.Registry
	snapshot   *catalog.Snapshot
	grpcServer *grpc.Server
	listener   net.Listener
	closing    chan struct{}
	mu         sync.RWMutex
	running    bool
	startedAt  time.Time
	log        *slog.Logger
}

// NewServer creates a new simulator server. The embedded registry proto
// is compiled eagerly so schema problems surface at construction, not
// at the first call.
func NewServer(config *Config) (*Server, error) {
	if config == nil {
		return nil, ErrNilConfig
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	schema, err := CompileSchema(context.Background())
	if err != nil {
		return nil, err
	}

	return &Server{
		config:   config,
		schema:   schema,
		scripts:  lifecycle.DefaultRegistry(),
		snapshot: catalog.Default(),
		log:      logging.Nop(),
	}, nil
}

// SetLogger sets the operational logger for the server. Call before
// Start; stream handlers bind their logger at registration time.
func (s *Server) SetLogger(log *slog.Logger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if log != nil {
		s.log = log
	} else {
		s.log = logging.Nop()
	}
}

// SetScripts replaces the phase script registry. Must be called before
// Start; in-flight calls keep the registry they started with.
func (s *Server) SetScripts(reg *lifecycle.Registry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if reg != nil {
		s.scripts = reg
	}
}

// Start binds the listener and begins serving.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return ErrServerAlreadyRunning
	}

	addr := fmt.Sprintf(":%d", s.config.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.listener = listener

	s.closing = make(chan struct{})
	s.grpcServer = grpc.NewServer()
	s.registerService()

	if s.config.Reflection {
		reflection.Register(s.grpcServer)
	}

	go func() {
		if err := s.grpcServer.Serve(listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			s.log.Error("simulator server error", "error", err)
		}
	}()

	s.running = true
	s.startedAt = time.Now()
	s.log.Info("simulator started", "addr", listener.Addr().String(), "kinds", len(methodKinds))
	return nil
}

// Stop shuts the server down. In-flight streams are told to abort, then
// the server is given the grace period to drain before being forced down.
func (s *Server) Stop(ctx context.Context, timeout time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	// Wake every in-flight session out of its inter-phase delay so the
	// graceful stop below does not wait out the remaining script time.
	close(s.closing)

	done := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
		s.grpcServer.Stop()
	case <-ctx.Done():
		s.grpcServer.Stop()
	}

	s.running = false
	s.startedAt = time.Time{}
	s.log.Info("simulator stopped")
	return nil
}

// IsRunning returns true if the server is running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Address returns the address the server is listening on.
func (s *Server) Address() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Port returns the port the server is listening on.
func (s *Server) Port() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener == nil {
		return 0
	}
	if addr, ok := s.listener.Addr().(*net.TCPAddr); ok {
		return addr.Port
	}
	return 0
}

// Uptime returns how long the server has been running.
func (s *Server) Uptime() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.running || s.startedAt.IsZero() {
		return 0
	}
	return time.Since(s.startedAt)
}

// registerService builds the grpc.ServiceDesc for the registration
// service from the compiled schema and registers it. The stream
// handlers capture their dependencies here, at registration time, so a
// call in flight never touches the server mutex: the script registry,
// snapshot and schema are read-only after Start.
func (s *Server) registerService() {
	methods := make([]grpc.MethodDesc, 0)
	streams := make([]grpc.StreamDesc, 0)

	descs := s.schema.Service().Methods()
	for i := 0; i < descs.Len(); i++ {
		method := descs.Get(i)
		name := string(method.Name())

		if method.IsStreamingServer() {
			streams = append(streams, grpc.StreamDesc{
				StreamName:    name,
				Handler:       s.makeStreamHandler(name, s.scripts, s.closing, s.log),
				ServerStreams: true,
			})
		} else {
			methods = append(methods, grpc.MethodDesc{
				MethodName: name,
				Handler:    s.makeUnaryHandler(name),
			})
		}
	}

	s.grpcServer.RegisterService(&grpc.ServiceDesc{
		ServiceName: registrationServiceName,
		HandlerType: (*interface{})(nil),
		Methods:     methods,
		Streams:     streams,
	}, struct{}{})
}

// makeStreamHandler creates a stream handler bound to a method name.
func (s *Server) makeStreamHandler(methodName string, scripts *lifecycle.Registry, closing <-chan struct{}, log *slog.Logger) func(srv interface{}, stream grpc.ServerStream) error {
	return func(srv interface{}, stream grpc.ServerStream) error {
		return s.handleRegistrationStream(stream, methodName, scripts, closing, log)
	}
}

// makeUnaryHandler creates a unary handler bound to a method name.
func (s *Server) makeUnaryHandler(methodName string) func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		return s.handleListing(ctx, dec, methodName)
	}
}

// handleRegistrationStream runs one registration simulation: it reads
// the request, resolves the phase script for the method's operation
// kind, and drives a stream session to completion.
func (s *Server) handleRegistrationStream(stream grpc.ServerStream, methodName string, scripts *lifecycle.Registry, closing <-chan struct{}, log *slog.Logger) error {
	method, err := s.schema.Method(methodName)
	if err != nil {
		return status.Errorf(codes.Unimplemented, "method %s not found", methodName)
	}

	reqMsg := dynamicpb.NewMessage(method.Input())
	if err := stream.RecvMsg(reqMsg); err != nil {
		return status.Errorf(codes.InvalidArgument, "failed to receive request: %v", err)
	}

	kind, ok := methodKinds[methodName]
	if !ok {
		return unsupportedKindError(methodName)
	}

	script, err := scripts.ScriptFor(kind)
	if err != nil {
		return unsupportedKindError(methodName)
	}

	entity := stringField(reqMsg, method.Input(), "name")
	if entity == "" {
		return status.Error(codes.InvalidArgument, "name is required")
	}

	session := &streamSession{
		kind:    kind,
		script:  script,
		entity:  entity,
		event:   method.Output(),
		stream:  stream,
		scale:   s.config.DelayScale,
		closing: closing,
		log:     log.With("kind", string(kind), "entity", entity),
	}

	return session.run(stream.Context())
}

// handleListing answers the static discovery calls from the snapshot.
func (s *Server) handleListing(_ context.Context, dec func(interface{}) error, methodName string) (interface{}, error) {
	method, err := s.schema.Method(methodName)
	if err != nil {
		return nil, status.Errorf(codes.Unimplemented, "method %s not found", methodName)
	}

	// The request carries no fields but must still be consumed.
	reqMsg := dynamicpb.NewMessage(method.Input())
	if err := dec(reqMsg); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "failed to decode request: %v", err)
	}

	var data map[string]interface{}
	switch methodName {
	case "ListServices":
		data = s.listServicesData()
	case "ListModules":
		data = s.listModulesData()
	default:
		return nil, status.Errorf(codes.Unimplemented, "no listing for method %s", methodName)
	}

	resp, err := buildMessage(method.Output(), data)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to build response: %v", err)
	}
	return resp, nil
}

// listServicesData renders the service snapshot as protojson input.
func (s *Server) listServicesData() map[string]interface{} {
	entries := make([]interface{}, 0, len(s.snapshot.Services))
	for _, svc := range s.snapshot.Services {
		entries = append(entries, map[string]interface{}{
			"name":    svc.Name,
			"id":      svc.ID,
			"host":    svc.Host,
			"port":    svc.Port,
			"version": svc.Version,
			"health":  svc.Health,
		})
	}
	return map[string]interface{}{
		"services": entries,
		"total":    len(entries),
		"asOf":     time.Now().UTC().Format(time.RFC3339Nano),
	}
}

// listModulesData renders the module snapshot as protojson input.
func (s *Server) listModulesData() map[string]interface{} {
	entries := make([]interface{}, 0, len(s.snapshot.Modules))
	for _, mod := range s.snapshot.Modules {
		entries = append(entries, map[string]interface{}{
			"name":         mod.Name,
			"id":           mod.ID,
			"host":         mod.Host,
			"port":         mod.Port,
			"version":      mod.Version,
			"inputFormat":  mod.InputFormat,
			"outputFormat": mod.OutputFormat,
			"health":       mod.Health,
		})
	}
	return map[string]interface{}{
		"modules": entries,
		"total":   len(entries),
		"asOf":    time.Now().UTC().Format(time.RFC3339Nano),
	}
}

// buildMessage builds a dynamic protobuf message from plain data by
// round-tripping through protojson.
func buildMessage(desc protoreflect.MessageDescriptor, data interface{}) (*dynamicpb.Message, error) {
	msg := dynamicpb.NewMessage(desc)
	if data == nil {
		return msg, nil
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal message data: %w", err)
	}
	if err := protojson.Unmarshal(jsonData, msg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal into proto: %w", err)
	}
	return msg, nil
}

// stringField reads a string field from a dynamic message by name.
func stringField(msg *dynamicpb.Message, desc protoreflect.MessageDescriptor, field string) string {
	fd := desc.Fields().ByName(protoreflect.Name(field))
	if fd == nil {
		return ""
	}
	return msg.Get(fd).String()
}

// unsupportedKindError reports a streaming call for which no phase
// script exists. The reason travels as a structured error detail so
// test clients can assert on it.
func unsupportedKindError(methodName string) error {
	st := status.Newf(codes.InvalidArgument, "no lifecycle script for method %s", methodName)

	info := &errdetails.ErrorInfo{
		Reason: "UNSUPPORTED_OPERATION_KIND",
		Domain: "registry.regsim.dev",
		Metadata: map[string]string{
			"method": methodName,
		},
	}
	if withDetails, err := st.WithDetails(info); err == nil {
		st = withDetails
	}
	return st.Err()
}
