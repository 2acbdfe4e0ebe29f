package rpc

import (
	"strings"
	"testing"

	"google.golang.org/protobuf/reflect/protoreflect"
)

func TestSchema_CompilesEmbeddedProtos(t *testing.T) {
	files, err := Schema()
	if err != nil {
		t.Fatalf("Schema returned error: %v", err)
	}
	if len(files) == 0 {
		t.Fatal("expected compiled proto files")
	}
}

func TestFindMethod_RegisterProvider(t *testing.T) {
	files, err := Schema()
	if err != nil {
		t.Fatalf("Schema returned error: %v", err)
	}

	fd, method, err := FindMethod(files, "registerProvider")
	if err != nil {
		t.Fatalf("FindMethod returned error: %v", err)
	}
	if string(fd.Package()) != "dp.service.ingestion" {
		t.Fatalf("unexpected package: %s", fd.Package())
	}
	if string(method.Parent().Name()) != "DpIngestionService" {
		t.Fatalf("unexpected service: %s", method.Parent().Name())
	}
	if string(method.Input().Name()) != "RegisterProviderRequest" {
		t.Fatalf("unexpected input type: %s", method.Input().Name())
	}
}

func TestFindMethod_Unknown(t *testing.T) {
	files, err := Schema()
	if err != nil {
		t.Fatalf("Schema returned error: %v", err)
	}

	_, _, err = FindMethod(files, "noSuchMethod")
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestFindMessage(t *testing.T) {
	files, err := Schema()
	if err != nil {
		t.Fatalf("Schema returned error: %v", err)
	}

	tests := []struct {
		name     string
		fullName string
	}{
		{name: "top-level", fullName: "dp.service.ingestion.RegisterProviderRequest"},
		{name: "nested", fullName: "dp.service.ingestion.RegisterProviderResponse.RegistrationResult"},
		{name: "common", fullName: "dp.service.common.Attribute"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			md, err := FindMessage(files, protoreflect.FullName(tt.fullName))
			if err != nil {
				t.Fatalf("FindMessage returned error: %v", err)
			}
			if string(md.FullName()) != tt.fullName {
				t.Fatalf("unexpected descriptor: %s", md.FullName())
			}
		})
	}
}

func TestFindMessage_Unknown(t *testing.T) {
	files, err := Schema()
	if err != nil {
		t.Fatalf("Schema returned error: %v", err)
	}

	if _, err := FindMessage(files, "dp.service.ingestion.NoSuchMessage"); err == nil {
		t.Fatal("expected error for unknown message")
	}
}
