package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestToZapLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		InfoLevel:  zapcore.InfoLevel,
		WarnLevel:  zapcore.WarnLevel,
		ErrorLevel: zapcore.ErrorLevel,
		DebugLevel: zapcore.DebugLevel,
		"bogus":    zapcore.DebugLevel,
	}
	for in, want := range cases {
		if got := toZapLevel(in); got != want {
			t.Fatalf("toZapLevel(%q)=%v, want %v", in, got, want)
		}
	}
}

func TestGet_Singleton(t *testing.T) {
	a := Get(" INFO ")
	b := Get(ErrorLevel)
	if a != b {
		t.Fatalf("Get should return the same instance")
	}
	if a.Desugar().Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("first level (info) should win; debug must be disabled")
	}
}

func TestNopAndWith(t *testing.T) {
	l := Nop().With("component", "test")
	l.Infow("discarded", "k", "v")
	if l.SugaredLogger == nil {
		t.Fatalf("With should keep a sugared logger")
	}
}
