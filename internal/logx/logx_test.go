package logx

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewWritesCallerAndMessage(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf)
	log.Info().Str("k", "v").Msg("hello")

	out := buf.String()
	for _, want := range []string{"hello", "k=v", "logx_test.go:"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output %q missing %q", out, want)
		}
	}
}

func TestShortCaller(t *testing.T) {
	got := shortCaller(0, "/a/b/c/handlers.go", 42)
	if strings.TrimSpace(got) != "handlers.go:42" {
		t.Fatalf("got=%q", got)
	}
	if len(got) != 28 {
		t.Fatalf("len got=%d want=28", len(got))
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zerolog.Level
		wantErr bool
	}{
		{"", zerolog.InfoLevel, false},
		{"debug", zerolog.DebugLevel, false},
		{" WARN ", zerolog.WarnLevel, false},
		{"loud", zerolog.InfoLevel, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err got=%v wantErr=%v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("level got=%s want=%s", got, tt.want)
			}
		})
	}
}

// 并发创建 logger 不能改全局状态（go test -race）
func TestNewConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	bufs := make([]bytes.Buffer, 8)
	for i := range bufs {
		wg.Add(1)
		go func(buf *bytes.Buffer) {
			defer wg.Done()
			l := New(buf)
			l.Info().Msg("hi")
		}(&bufs[i])
	}
	wg.Wait()
	for i := range bufs {
		if !strings.Contains(bufs[i].String(), "logx_test.go:") {
			t.Fatalf("logger %d output %q has no short caller", i, bufs[i].String())
		}
	}
}
