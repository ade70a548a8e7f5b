package errors

import (
	"fmt"
	"testing"
)

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		code Code
		want int
	}{
		{CodeValidation, 400},
		{CodeNotFound, 404},
		{CodeAlreadyExists, 409},
		{CodeUpload, 502},
		{CodeProvider, 502},
		{CodeUnavailable, 503},
		{CodeInternal, 500},
		{Code("SOMETHING_ELSE"), 500},
	}
	for _, c := range cases {
		if got := New(c.code, "x").HTTPStatus(); got != c.want {
			t.Errorf("HTTPStatus(%s) = %d, want %d", c.code, got, c.want)
		}
	}
}

func TestWrapPreservesCode(t *testing.T) {
	inner := NotFound("job", "job_1")
	wrapped := Wrap(inner, "worker.fetch", "failed to load job")

	if GetCode(wrapped) != CodeNotFound {
		t.Errorf("wrapped code = %s, want %s", GetCode(wrapped), CodeNotFound)
	}
	if !IsNotFound(wrapped) {
		t.Error("IsNotFound(wrapped) = false")
	}
}

func TestWrapPlainError(t *testing.T) {
	err := Wrap(fmt.Errorf("disk full"), "op", "write failed")
	if GetCode(err) != CodeInternal {
		t.Errorf("code = %s, want %s", GetCode(err), CodeInternal)
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(nil, "op", "msg") != nil {
		t.Error("Wrap(nil) != nil")
	}
	if WrapWithCode(nil, CodeUpload, "op", "msg") != nil {
		t.Error("WrapWithCode(nil) != nil")
	}
}

func TestErrorString(t *testing.T) {
	err := WrapWithCode(fmt.Errorf("connection refused"), CodeProvider, "segmind.generate", "request failed")
	want := "segmind.generate: [PROVIDER_ERROR] request failed: connection refused"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestGetFields(t *testing.T) {
	err := NotFound("job", "job_1")
	fields := GetFields(err)
	if fields["resource"] != "job" || fields["id"] != "job_1" {
		t.Errorf("fields = %v", fields)
	}
	if GetFields(fmt.Errorf("plain")) != nil {
		t.Error("GetFields(plain) != nil")
	}
}

func TestIsCodeThroughWrapping(t *testing.T) {
	err := fmt.Errorf("outer: %w", Upload("failed to store image"))
	if !IsCode(err, CodeUpload) {
		t.Error("IsCode through fmt wrapping = false")
	}
}
