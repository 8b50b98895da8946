// Package testutil holds small assertion helpers shared by package tests.
package testutil

import (
	"reflect"
	"testing"
)

// AssertEqual fails the test when want and got differ.
func AssertEqual(t testing.TB, want, got any) {
	t.Helper()

	if !reflect.DeepEqual(want, got) {
		t.Fatalf("want %#v, got %#v", want, got)
	}
}

// AssertNoError fails the test when err is not nil.
func AssertNoError(t testing.TB, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test when err is nil.
func AssertError(t testing.TB, err error) {
	t.Helper()

	if err == nil {
		t.Fatal("expected error, got nil")
	}
}
