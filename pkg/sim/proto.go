package sim

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/bufbuild/protocompile"
	"google.golang.org/protobuf/reflect/protoreflect"
)

// registrationServiceName is the fully qualified name of the simulated service.
const registrationServiceName = "registry.v1.RegistrationService"

//go:embed registry.proto
var registryProtoSource string

const registryProtoPath = "registry/v1/registry.proto"

// Schema holds the compiled registry proto and provides access to the
// registration service's method descriptors. It is immutable after
// compilation and safe for concurrent reads.
type Schema struct {
	file    protoreflect.FileDescriptor
	service protoreflect.ServiceDescriptor
}

// CompileSchema compiles the embedded registry proto. The source is
// resolved from memory; only the well-known imports come from the
// compiler's standard set.
func CompileSchema(ctx context.Context) (*Schema, error) {
	compiler := protocompile.Compiler{
		Resolver: protocompile.WithStandardImports(&protocompile.SourceResolver{
			Accessor: protocompile.SourceAccessorFromMap(map[string]string{
				registryProtoPath: registryProtoSource,
			}),
		}),
	}

	compiled, err := compiler.Compile(ctx, registryProtoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to compile registry proto: %w", err)
	}

	file := compiled[0]
	svc := file.Services().ByName(protoreflect.Name("RegistrationService"))
	if svc == nil {
		return nil, ErrServiceNotFound
	}

	return &Schema{file: file, service: svc}, nil
}

// Service returns the registration service descriptor.
func (s *Schema) Service() protoreflect.ServiceDescriptor {
	return s.service
}

// Method returns the descriptor for a method of the registration
// service, or ErrMethodNotFound.
func (s *Schema) Method(name string) (protoreflect.MethodDescriptor, error) {
	m := s.service.Methods().ByName(protoreflect.Name(name))
	if m == nil {
		return nil, fmt.Errorf("%w: %s", ErrMethodNotFound, name)
	}
	return m, nil
}

// MethodNames returns the names of all methods on the registration
// service, in declaration order.
func (s *Schema) MethodNames() []string {
	methods := s.service.Methods()
	names := make([]string, 0, methods.Len())
	for i := 0; i < methods.Len(); i++ {
		names = append(names, string(methods.Get(i).Name()))
	}
	return names
}
