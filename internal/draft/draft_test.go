package draft

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stridefit/stride/internal/session"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	d, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

// TestSaveLoadRoundTrip saves a session and restores it intact.
func TestSaveLoadRoundTrip(t *testing.T) {
	d := openTestDB(t)

	store := session.New()
	exID := store.AddExercise("Squat", uuid.New())
	setID := store.AddSet(exID)
	store.UpdateSet(exID, setID, session.FieldReps, "5")
	store.UpdateSet(exID, setID, session.FieldWeight, "100")
	store.ToggleSetCompletion(exID, setID)
	store.SetWeightUnit(session.UnitLbs)
	snap := store.Snapshot()

	if err := d.Save("user_1", snap); err != nil {
		t.Fatal(err)
	}

	loaded, err := d.Load("user_1")
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded.Exercises) != 1 || loaded.Exercises[0].Name != "Squat" {
		t.Errorf("exercises = %+v", loaded.Exercises)
	}
	set := loaded.Exercises[0].Sets[0]
	if set.Reps != "5" || set.Weight != "100" || !set.Completed {
		t.Errorf("set = %+v", set)
	}
	if loaded.Unit != session.UnitLbs {
		t.Errorf("unit = %v, want lbs", loaded.Unit)
	}
}

// TestLoadMissing returns ErrNoDraft for an unknown user.
func TestLoadMissing(t *testing.T) {
	d := openTestDB(t)
	if _, err := d.Load("nobody"); !errors.Is(err, ErrNoDraft) {
		t.Fatalf("err = %v, want ErrNoDraft", err)
	}
}

// TestSaveReplaces keeps only the latest draft per user.
func TestSaveReplaces(t *testing.T) {
	d := openTestDB(t)

	first := session.New()
	first.AddExercise("Squat", uuid.New())
	if err := d.Save("user_1", first.Snapshot()); err != nil {
		t.Fatal(err)
	}

	second := session.New()
	second.AddExercise("Deadlift", uuid.New())
	if err := d.Save("user_1", second.Snapshot()); err != nil {
		t.Fatal(err)
	}

	loaded, err := d.Load("user_1")
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded.Exercises) != 1 || loaded.Exercises[0].Name != "Deadlift" {
		t.Errorf("exercises = %+v", loaded.Exercises)
	}
}

// TestClear removes the draft; clearing twice is fine.
func TestClear(t *testing.T) {
	d := openTestDB(t)

	store := session.New()
	store.AddExercise("Squat", uuid.New())
	if err := d.Save("user_1", store.Snapshot()); err != nil {
		t.Fatal(err)
	}

	if err := d.Clear("user_1"); err != nil {
		t.Fatal(err)
	}
	if _, err := d.Load("user_1"); !errors.Is(err, ErrNoDraft) {
		t.Fatalf("err = %v, want ErrNoDraft after clear", err)
	}
	if err := d.Clear("user_1"); err != nil {
		t.Fatal(err)
	}
}
