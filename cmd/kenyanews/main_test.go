package main

import (
	"strings"
	"testing"

	"KenyaNews/internal/usecase"
)

func TestRequestedSources(t *testing.T) {
	t.Parallel()

	got := requestedSources(" tuko, star ,,", []string{"citizen"})
	if strings.Join(got, ",") != "tuko,star,citizen" {
		t.Fatalf("unexpected sources: %v", got)
	}
	if got := requestedSources("", nil); len(got) != 0 {
		t.Fatalf("expected empty request, got %v", got)
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	if got := exitCode(usecase.BatchReport{Overall: true}); got != 0 {
		t.Fatalf("exit code for successful batch = %d", got)
	}
	if got := exitCode(usecase.BatchReport{Overall: false}); got != 1 {
		t.Fatalf("exit code for failed batch = %d", got)
	}
}
