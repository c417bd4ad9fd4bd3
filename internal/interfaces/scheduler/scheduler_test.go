package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestParseScheduleTime(t *testing.T) {
	tests := []struct {
		input   string
		want    ScheduleTime
		wantErr bool
	}{
		{"00:10", ScheduleTime{Hour: 0, Minute: 10}, false},
		{"06:00", ScheduleTime{Hour: 6, Minute: 0}, false},
		{"23:59", ScheduleTime{Hour: 23, Minute: 59}, false},
		{"24:00", ScheduleTime{}, true},
		{"12:60", ScheduleTime{}, true},
		{"noon", ScheduleTime{}, true},
		{"", ScheduleTime{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseScheduleTime(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseScheduleTime(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseScheduleTime(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseScheduleTime(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestScheduleTime_String(t *testing.T) {
	st := ScheduleTime{Hour: 6, Minute: 5}
	if st.String() != "06:05" {
		t.Errorf("String() = %q, want %q", st.String(), "06:05")
	}
}

func TestNew_InvalidScheduleTime(t *testing.T) {
	_, err := New(Config{
		ScheduleTimes: []string{"12:00", "bogus"},
		WorkerCount:   1,
		QueueSize:     1,
	})
	if err == nil {
		t.Error("New() expected error for invalid schedule time")
	}
}

type countingJob struct {
	runs atomic.Int64
}

func (j *countingJob) Execute(ctx context.Context) error {
	j.runs.Add(1)
	return nil
}
func (j *countingJob) Name() string { return "counting job" }

func TestScheduler_RunOnStartup(t *testing.T) {
	job := &countingJob{}
	sched, err := New(Config{
		ScheduleTimes: []string{"00:10"},
		WorkerCount:   1,
		JobDelay:      0,
		QueueSize:     4,
		RunOnStartup:  true,
		JobProvider: func(ctx context.Context) ([]Job, error) {
			return []Job{job}, nil
		},
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	sched.Start()

	deadline := time.Now().Add(2 * time.Second)
	for job.runs.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	sched.Shutdown(2 * time.Second)

	if job.runs.Load() == 0 {
		t.Error("expected startup run to execute the job")
	}
}

func TestScheduler_TriggerNow(t *testing.T) {
	job := &countingJob{}
	sched, err := New(Config{
		ScheduleTimes: []string{"00:10"},
		WorkerCount:   1,
		JobDelay:      0,
		QueueSize:     4,
		RunOnStartup:  false,
		JobProvider: func(ctx context.Context) ([]Job, error) {
			return []Job{job}, nil
		},
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	sched.Start()
	sched.TriggerNow()

	deadline := time.Now().Add(2 * time.Second)
	for job.runs.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	sched.Shutdown(2 * time.Second)

	if job.runs.Load() == 0 {
		t.Error("expected manual trigger to execute the job")
	}
}
