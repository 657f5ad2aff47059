package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"build-notifier/internal/adapter/location"
	"build-notifier/internal/adapter/message"
	"build-notifier/internal/adapter/webhook"
	"build-notifier/internal/domain/model"
	"build-notifier/internal/domain/notifyerr"
)

type fakeSender struct {
	calls     int
	endpoint  string
	payload   string
	delivered bool
	err       error
}

func (f *fakeSender) Send(_ context.Context, endpoint, payload string) (bool, error) {
	f.calls++
	f.endpoint = endpoint
	f.payload = payload
	return f.delivered, f.err
}

type failingBuilder struct{}

func (failingBuilder) Build(model.Build) (string, error) { return "", errors.New("boom") }

func successBuild() model.Build {
	return model.Build{
		JobDisplayName: "build-1",
		Result:         model.ResultSuccess,
		Timestamp:      "12:00",
		URL:            "/job/build-1/5/",
	}
}

func TestRunMissingWebhookMakesNoCall(t *testing.T) {
	sender := &fakeSender{delivered: true}
	uc := NewNotifyBuild(message.NewMattermost(message.Options{}), sender, nil, NotifyBuildConfig{})

	outcome, err := uc.Run(context.Background(), successBuild())
	if !notifyerr.IsKind(err, notifyerr.KindConfig) {
		t.Fatalf("expected config error, got %v", err)
	}
	if outcome.OK() {
		t.Error("expected failed outcome")
	}
	if sender.calls != 0 {
		t.Errorf("expected no send, got %d", sender.calls)
	}
}

func TestRunSkipsSuccessWhenOnlyOnFailure(t *testing.T) {
	sender := &fakeSender{delivered: true}
	uc := NewNotifyBuild(message.NewMattermost(message.Options{}), sender, nil, NotifyBuildConfig{
		WebhookURL:    "https://chat.example.com/hooks/x",
		OnlyOnFailure: true,
	})

	outcome, err := uc.Run(context.Background(), successBuild())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if outcome != OutcomeSkipped || !outcome.OK() {
		t.Errorf("expected skipped outcome, got %s", outcome)
	}
	if sender.calls != 0 {
		t.Errorf("expected no send, got %d", sender.calls)
	}
}

func TestRunOnlyOnFailureStillReportsOtherResults(t *testing.T) {
	for _, result := range []model.Result{model.ResultFailure, model.ResultUnstable, model.ResultAborted, model.ResultNotBuilt, model.ResultNone} {
		t.Run(result.String(), func(t *testing.T) {
			sender := &fakeSender{delivered: true}
			uc := NewNotifyBuild(message.NewMattermost(message.Options{}), sender, nil, NotifyBuildConfig{
				WebhookURL:    "https://chat.example.com/hooks/x",
				OnlyOnFailure: true,
			})
			build := successBuild()
			build.Result = result

			outcome, err := uc.Run(context.Background(), build)
			if err != nil {
				t.Fatalf("Run() error: %v", err)
			}
			if outcome != OutcomeSent {
				t.Errorf("expected sent, got %s", outcome)
			}
			if sender.calls != 1 {
				t.Errorf("expected one send, got %d", sender.calls)
			}
		})
	}
}

func TestRunRejected(t *testing.T) {
	sender := &fakeSender{delivered: false}
	uc := NewNotifyBuild(message.NewMattermost(message.Options{}), sender, nil, NotifyBuildConfig{WebhookURL: "https://x/hook"})

	outcome, err := uc.Run(context.Background(), successBuild())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if outcome != OutcomeRejected {
		t.Errorf("expected rejected, got %s", outcome)
	}
	if sender.endpoint != "https://x/hook" {
		t.Errorf("unexpected endpoint %q", sender.endpoint)
	}
}

func TestRunWrapsDeliveryError(t *testing.T) {
	sender := &fakeSender{err: notifyerr.UnexpectedStatus(500)}
	uc := NewNotifyBuild(message.NewMattermost(message.Options{}), sender, nil, NotifyBuildConfig{WebhookURL: "https://x/hook"})

	_, err := uc.Run(context.Background(), successBuild())
	if !notifyerr.IsKind(err, notifyerr.KindUnexpectedStatus) {
		t.Fatalf("expected unexpected-status error, got %v", err)
	}
	if notifyerr.StatusCode(err) != 500 {
		t.Errorf("expected status 500, got %d", notifyerr.StatusCode(err))
	}
}

func TestRunBuilderError(t *testing.T) {
	sender := &fakeSender{delivered: true}
	uc := NewNotifyBuild(failingBuilder{}, sender, nil, NotifyBuildConfig{WebhookURL: "https://x/hook"})

	if _, err := uc.Run(context.Background(), successBuild()); err == nil {
		t.Fatal("expected error")
	}
	if sender.calls != 0 {
		t.Errorf("expected no send, got %d", sender.calls)
	}
}

func TestRunEndToEnd(t *testing.T) {
	var calls int32
	payloads := make(chan model.Payload, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		var p model.Payload
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		payloads <- p
		if r.Header.Get("X-Notification-Id") == "" {
			t.Error("expected delivery ID header")
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	uc := NewNotifyBuild(
		message.NewMattermost(message.Options{BaseURL: location.Static("https://ci.example.com")}),
		webhook.NewSender(5*time.Second, nil),
		nil,
		NotifyBuildConfig{WebhookURL: server.URL},
	)

	outcome, err := uc.Run(context.Background(), successBuild())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if outcome != OutcomeSent {
		t.Fatalf("expected sent, got %s", outcome)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("expected one request, got %d", n)
	}

	received := <-payloads
	if len(received.Attachments) != 1 {
		t.Fatalf("expected one attachment, got %d", len(received.Attachments))
	}
	att := received.Attachments[0]
	if att.Title != "Job: build-1 Status: SUCCESS" {
		t.Errorf("unexpected title %q", att.Title)
	}
	if att.Color != "#228a00" {
		t.Errorf("unexpected color %q", att.Color)
	}
	if att.Text != ":sunny: Started by unknown cause 12:00 [View](https://ci.example.com/job/build-1/5/)" {
		t.Errorf("unexpected text %q", att.Text)
	}
}

func TestRunEndToEndOnlyOnFailureMakesNoRequest(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	uc := NewNotifyBuild(
		message.NewMattermost(message.Options{}),
		webhook.NewSender(time.Second, nil),
		nil,
		NotifyBuildConfig{WebhookURL: server.URL, OnlyOnFailure: true},
	)

	outcome, err := uc.Run(context.Background(), successBuild())
	if err != nil || !outcome.OK() {
		t.Fatalf("expected success, got %s, %v", outcome, err)
	}
	if n := atomic.LoadInt32(&calls); n != 0 {
		t.Errorf("expected no requests, got %d", n)
	}
}
