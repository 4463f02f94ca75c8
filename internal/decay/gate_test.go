package decay

import (
	"testing"

	"github.com/julianstephens/vanguard/internal/models"
)

func TestSelectCriticalPicksLargestOverdue(t *testing.T) {
	// overdue days 2, 6, 0, -1
	allies := []models.Ally{
		ally("two", 7, 9),
		ally("six", 7, 13),
		ally("zero", 7, 7),
		ally("minus", 7, 6),
	}
	got := SelectCritical(allies, now)
	if got == nil || got.Name != "six" {
		t.Fatalf("SelectCritical() = %+v, want six", got)
	}
}

func TestSelectCriticalTiesKeepFirst(t *testing.T) {
	allies := []models.Ally{ally("first", 7, 10), ally("second", 3, 6)}
	got := SelectCritical(allies, now)
	if got == nil || got.Name != "first" {
		t.Fatalf("SelectCritical() = %+v, want first", got)
	}
}

func TestSelectCriticalInvalidFrequencyWins(t *testing.T) {
	allies := []models.Ally{ally("late", 1, 400), ally("broken", 0, 0), ally("broken2", -1, 0)}
	got := SelectCritical(allies, now)
	if got == nil || got.Name != "broken" {
		t.Fatalf("SelectCritical() = %+v, want broken", got)
	}
}

func TestIsLockedIgnoresHealth(t *testing.T) {
	// Health 0 at exactly the cadence, but not overdue.
	allies := []models.Ally{ally("met", 7, 7), ally("fresh", 30, 1)}
	if IsLocked(allies, now) {
		t.Error("IsLocked() = true, want false when no ally is overdue")
	}
	if IsLocked(nil, now) {
		t.Error("IsLocked(nil) = true")
	}
}

func TestEvaluate(t *testing.T) {
	overdue := ally("late", 7, 10)
	fine := ally("fine", 7, 1)

	tests := []struct {
		name       string
		allies     []models.Ally
		override   SessionOverride
		wantLocked bool
		wantBlocks bool
	}{
		{"unlocked", []models.Ally{fine}, SessionOverride{}, false, false},
		{"locked", []models.Ally{fine, overdue}, SessionOverride{}, true, true},
		{"bypassed", []models.Ally{fine, overdue}, SessionOverride{Bypassed: true}, true, false},
		{"bypass without lock", []models.Ally{fine}, SessionOverride{Bypassed: true}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Evaluate(tt.allies, now, tt.override)
			if g.Locked != tt.wantLocked || g.Blocks() != tt.wantBlocks {
				t.Errorf("Evaluate() = %+v (blocks %v), want locked %v blocks %v", g, g.Blocks(), tt.wantLocked, tt.wantBlocks)
			}
			if tt.wantLocked && (g.Ally == nil || g.Ally.Name != "late") {
				t.Errorf("lock target = %+v, want late", g.Ally)
			}
		})
	}
}

func TestRestoreMovesLockToNextAlly(t *testing.T) {
	allies := []models.Ally{ally("worst", 7, 20), ally("next", 7, 9)}

	g := Evaluate(allies, now, SessionOverride{})
	if g.Ally == nil || g.Ally.Name != "worst" {
		t.Fatalf("initial target = %+v", g.Ally)
	}

	allies[0] = Restore(allies[0], now)
	g = Evaluate(allies, now, SessionOverride{})
	if g.Ally == nil || g.Ally.Name != "next" {
		t.Fatalf("target after restore = %+v, want next", g.Ally)
	}

	allies[1] = Restore(allies[1], now)
	if Evaluate(allies, now, SessionOverride{}).Locked {
		t.Error("gate still locked after restoring every ally")
	}
}

func TestOverrideDoesNotChangeAllyData(t *testing.T) {
	allies := []models.Ally{ally("late", 7, 10)}
	before := allies[0].LastContact
	Evaluate(allies, now, SessionOverride{Bypassed: true})
	if !allies[0].LastContact.Equal(before) {
		t.Error("override mutated ally")
	}
	if !Evaluate(allies, now, SessionOverride{}).Blocks() {
		t.Error("fresh evaluation without override should block")
	}
}
