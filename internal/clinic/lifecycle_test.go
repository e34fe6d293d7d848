package clinic

import (
	"context"
	"testing"
)

func TestDefaultMemoizes(t *testing.T) {
	t.Setenv("CLINICORE_STORAGE_DRIVER", "memory")
	t.Cleanup(ResetDefault)

	ctx := context.Background()
	first, err := Default(ctx)
	if err != nil {
		t.Fatalf("default: %v", err)
	}
	second, err := Default(ctx)
	if err != nil {
		t.Fatalf("second default: %v", err)
	}
	if first != second {
		t.Fatal("Default must return the same instance")
	}

	// Seeded stores come up with reference data already loaded.
	if first.Store().Count("drugs") == 0 {
		t.Fatal("default service missing seed data")
	}
}

func TestDefaultConcurrentFirstCallsShareOneInstance(t *testing.T) {
	t.Setenv("CLINICORE_STORAGE_DRIVER", "memory")
	t.Cleanup(ResetDefault)

	ctx := context.Background()
	results := make(chan *Service, 2)
	for i := 0; i < 2; i++ {
		go func() {
			svc, err := Default(ctx)
			if err != nil {
				t.Errorf("default: %v", err)
			}
			results <- svc
		}()
	}
	first := <-results
	second := <-results
	if first == nil || first != second {
		t.Fatal("concurrent first calls must share one instance")
	}
}

func TestDefaultRetriesAfterFailure(t *testing.T) {
	t.Setenv("CLINICORE_STORAGE_DRIVER", "postgres")
	t.Setenv("CLINICORE_POSTGRES_DSN", "")
	t.Cleanup(ResetDefault)

	if _, err := Default(context.Background()); err == nil {
		t.Fatal("expected config error")
	}

	t.Setenv("CLINICORE_STORAGE_DRIVER", "memory")
	svc, err := Default(context.Background())
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if svc == nil {
		t.Fatal("retry returned nil service")
	}
}

func TestResetDefaultClears(t *testing.T) {
	t.Setenv("CLINICORE_STORAGE_DRIVER", "memory")
	t.Cleanup(ResetDefault)

	first, err := Default(context.Background())
	if err != nil {
		t.Fatalf("default: %v", err)
	}
	ResetDefault()
	second, err := Default(context.Background())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if first == second {
		t.Fatal("ResetDefault must discard the previous instance")
	}
}
