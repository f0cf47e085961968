package cron

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/charmbracelet/log"
)

func TestCronLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)
	clogger := cronLogger{logger}
	clogger.Info("foo")
	clogger.Error(fmt.Errorf("bar"), "test")
	if buf.String() != "DEBU foo\nERRO test err=bar\n" {
		t.Errorf("unexpected log output: %s", buf.String())
	}
}

func TestSchedulerAddRemove(t *testing.T) {
	s := NewScheduler(context.TODO())
	id, err := s.AddFunc("* * * * *", func() {})
	if err != nil {
		t.Fatal(err)
	}
	s.Remove(id)
}

func TestSchedulerRejectsEmptySpec(t *testing.T) {
	s := NewScheduler(context.TODO())
	if _, err := s.AddFunc("", func() {}); err == nil {
		t.Fatal("expected an error for an empty spec")
	}
}
