package rpc

import (
	"context"
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/bufbuild/protocompile"
	"github.com/bufbuild/protocompile/linker"
	"go.uber.org/zap"
	"google.golang.org/protobuf/reflect/protoreflect"
)

// protoFS holds the Data Platform .proto sources. The schema is owned by the
// platform's protocol definition; the SDK embeds and consumes it verbatim.
//
//go:embed proto/*.proto
var protoFS embed.FS

var (
	schemaOnce  sync.Once
	schemaFiles linker.Files
	schemaErr   error
)

// Schema compiles the embedded Data Platform proto sources into file
// descriptors. Compilation happens once per process; subsequent calls return
// the cached result.
func Schema() (linker.Files, error) {
	schemaOnce.Do(func() {
		schemaFiles, schemaErr = compileEmbeddedProtos()
	})
	return schemaFiles, schemaErr
}

func compileEmbeddedProtos() (linker.Files, error) {
	entries, err := protoFS.ReadDir("proto")
	if err != nil {
		return nil, fmt.Errorf("read embedded proto sources: %w", err)
	}

	sources := make(map[string]string, len(entries))
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		data, err := protoFS.ReadFile("proto/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read embedded proto %s: %w", entry.Name(), err)
		}
		sources[entry.Name()] = string(data)
		names = append(names, entry.Name())
	}

	accessor := protocompile.SourceAccessorFromMap(sources)
	resolver := protocompile.WithStandardImports(&protocompile.SourceResolver{Accessor: accessor})
	compiler := protocompile.Compiler{
		Resolver:       resolver,
		SourceInfoMode: protocompile.SourceInfoStandard,
	}
	fds, err := compiler.Compile(context.Background(), names...)
	if err != nil || fds == nil {
		zap.L().Error("failed to compile embedded proto files", zap.Error(err))
		return nil, fmt.Errorf("failed to compile embedded proto files: %v", err)
	}
	return fds, nil
}

// FindMethod searches the compiled proto files for a method with the provided
// simple method name (as declared in the .proto). It iterates over all
// services in all files and returns the file descriptor and method descriptor
// for the first match.
func FindMethod(files linker.Files, methodName string) (protoreflect.FileDescriptor, protoreflect.MethodDescriptor, error) {
	for _, file := range files {
		for i := 0; i < file.Services().Len(); i++ {
			service := file.Services().Get(i)
			method := service.Methods().ByName(protoreflect.Name(methodName))
			if method != nil {
				return file, method, nil
			}
		}
	}
	return nil, nil, fmt.Errorf("method %s not found in embedded proto files", methodName)
}

// FindMessage looks up a message descriptor by its fully-qualified name,
// including nested messages.
func FindMessage(files linker.Files, fullName protoreflect.FullName) (protoreflect.MessageDescriptor, error) {
	for _, file := range files {
		if !strings.HasPrefix(string(fullName), string(file.Package())+".") {
			continue
		}
		if md := findMessageIn(file.Messages(), fullName); md != nil {
			return md, nil
		}
	}
	return nil, fmt.Errorf("message %s not found in embedded proto files", fullName)
}

func findMessageIn(messages protoreflect.MessageDescriptors, fullName protoreflect.FullName) protoreflect.MessageDescriptor {
	for i := 0; i < messages.Len(); i++ {
		md := messages.Get(i)
		if md.FullName() == fullName {
			return md
		}
		if nested := findMessageIn(md.Messages(), fullName); nested != nil {
			return nested
		}
	}
	return nil
}
