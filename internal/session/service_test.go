package session

import (
	"errors"
	"testing"

	"github.com/teaonrocks/ODAT/internal/game"
	"github.com/teaonrocks/ODAT/internal/models"
	"github.com/teaonrocks/ODAT/internal/scenario"
	"github.com/teaonrocks/ODAT/internal/store"
)

const testSlides = 3

func newTestService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	db := store.New()
	for day := 0; day <= game.FinalDay; day++ {
		sc := &models.Scenario{Day: day, Prompt: "day"}
		if day == 1 {
			sc.SubPages = []models.SubPage{{Title: "one"}, {Title: "two"}}
		}
		db.PutScenario(sc)
	}
	return NewService(db, scenario.NewCatalog(db), testSlides), db
}

// startSession walks a fresh session to the start of day 1 (IN_GAME).
func startSession(t *testing.T, svc *Service) *models.Session {
	t.Helper()
	session, err := svc.Create()
	if err != nil {
		t.Fatal(err)
	}
	mustOp(t, svc.StartInstructions, session)
	for i := 0; i < testSlides-1; i++ {
		mustOp(t, svc.NextInstruction, session)
	}
	mustOp(t, svc.StartGame, session)
	return mustOp(t, svc.ShowDayScenario, session)
}

func mustOp(t *testing.T, op func(string, string) (*models.Session, error), session *models.Session) *models.Session {
	t.Helper()
	updated, err := op(session.ID, session.HostID)
	if err != nil {
		t.Fatal(err)
	}
	return updated
}

func TestCreateSession(t *testing.T) {
	svc, _ := newTestService(t)
	session, err := svc.Create()
	if err != nil {
		t.Fatal(err)
	}

	if session.Phase != models.PhaseLobby {
		t.Errorf("Phase = %s, want LOBBY", session.Phase)
	}
	if len(session.Code) != game.SessionCodeLength {
		t.Errorf("len(Code) = %d, want %d", len(session.Code), game.SessionCodeLength)
	}
	if session.HostID == "" {
		t.Error("HostID must be issued at creation")
	}
	if session.TransitionDuration != game.DefaultTransitionDuration {
		t.Errorf("TransitionDuration = %d, want default", session.TransitionDuration)
	}

	found, err := svc.GetByCode(session.Code)
	if err != nil {
		t.Fatal(err)
	}
	if found.ID != session.ID {
		t.Error("GetByCode returned a different session")
	}
}

func TestInstructionWalk(t *testing.T) {
	svc, _ := newTestService(t)
	session, _ := svc.Create()

	updated := mustOp(t, svc.StartInstructions, session)
	if updated.Phase != models.PhaseInstructions || updated.InstructionSlide != 0 {
		t.Fatalf("got phase=%s slide=%d", updated.Phase, updated.InstructionSlide)
	}

	// Back from the first slide stays at the first slide
	updated = mustOp(t, svc.PrevInstruction, session)
	if updated.InstructionSlide != 0 {
		t.Errorf("slide = %d, want 0", updated.InstructionSlide)
	}

	updated = mustOp(t, svc.NextInstruction, session)
	if updated.InstructionSlide != 1 {
		t.Errorf("slide = %d, want 1", updated.InstructionSlide)
	}

	// Starting the game before the last slide is rejected
	if _, err := svc.StartGame(session.ID, session.HostID); !errors.Is(err, game.ErrInvalidTransition) {
		t.Errorf("err = %v, want ErrInvalidTransition", err)
	}

	mustOp(t, svc.NextInstruction, session)
	// Forward past the last slide stays at the last slide
	updated = mustOp(t, svc.NextInstruction, session)
	if updated.InstructionSlide != testSlides-1 {
		t.Errorf("slide = %d, want %d", updated.InstructionSlide, testSlides-1)
	}

	updated = mustOp(t, svc.StartGame, session)
	if updated.Phase != models.PhaseDayTransition || updated.CurrentDay != 1 {
		t.Errorf("got phase=%s day=%d, want DAY_TRANSITION day 1", updated.Phase, updated.CurrentDay)
	}
}

func TestTransitionsRejectedOutOfPhase(t *testing.T) {
	svc, _ := newTestService(t)
	session, _ := svc.Create()

	ops := map[string]func(string, string) (*models.Session, error){
		"NextInstruction": svc.NextInstruction,
		"PrevInstruction": svc.PrevInstruction,
		"StartGame":       svc.StartGame,
		"ShowDayScenario": svc.ShowDayScenario,
		"ShowDayResult":   svc.ShowDayResult,
		"NextSubPage":     svc.NextSubPage,
		"AdvanceDay":      svc.AdvanceDay,
	}
	for name, op := range ops {
		if _, err := op(session.ID, session.HostID); !errors.Is(err, game.ErrInvalidTransition) {
			t.Errorf("%s in LOBBY: err = %v, want ErrInvalidTransition", name, err)
		}
	}
}

func TestHostGuard(t *testing.T) {
	svc, _ := newTestService(t)
	session, _ := svc.Create()

	if _, err := svc.StartInstructions(session.ID, "not-the-host"); !errors.Is(err, game.ErrNotHost) {
		t.Errorf("err = %v, want ErrNotHost", err)
	}
	if _, err := svc.StartInstructions(session.ID, session.HostID); err != nil {
		t.Errorf("host rejected: %v", err)
	}
}

func TestOperationsOnMissingSession(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.StartInstructions("missing", "host"); !errors.Is(err, game.ErrSessionNotFound) {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
	if _, err := svc.GetByCode("ZZZZ"); !errors.Is(err, game.ErrSessionNotFound) {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestDayResultSubPages(t *testing.T) {
	svc, _ := newTestService(t)
	session := startSession(t, svc) // IN_GAME, day 1 has two sub-pages

	updated := mustOp(t, svc.ShowDayResult, session)
	if updated.Phase != models.PhaseDayResult || updated.CurrentSubPage != 0 {
		t.Fatalf("got phase=%s subPage=%d", updated.Phase, updated.CurrentSubPage)
	}

	updated = mustOp(t, svc.NextSubPage, session)
	if updated.CurrentSubPage != 1 {
		t.Errorf("subPage = %d, want 1", updated.CurrentSubPage)
	}
	if updated.Phase != models.PhaseDayResult {
		t.Errorf("NextSubPage must not change phase, got %s", updated.Phase)
	}

	// Past the last sub-page there is nothing to advance to
	if _, err := svc.NextSubPage(session.ID, session.HostID); !errors.Is(err, game.ErrInvalidTransition) {
		t.Errorf("err = %v, want ErrInvalidTransition", err)
	}

	updated = mustOp(t, svc.AdvanceDay, session)
	if updated.Phase != models.PhaseDayTransition || updated.CurrentDay != 2 {
		t.Errorf("got phase=%s day=%d, want DAY_TRANSITION day 2", updated.Phase, updated.CurrentDay)
	}
	if updated.CurrentSubPage != -1 {
		t.Errorf("subPage = %d, want -1 after advancing", updated.CurrentSubPage)
	}
}

func TestAdvanceDayStraightFromInGame(t *testing.T) {
	svc, _ := newTestService(t)
	session := startSession(t, svc)

	updated := mustOp(t, svc.AdvanceDay, session)
	if updated.Phase != models.PhaseDayTransition || updated.CurrentDay != 2 {
		t.Errorf("got phase=%s day=%d", updated.Phase, updated.CurrentDay)
	}
}

func TestSettlementSweep(t *testing.T) {
	svc, db := newTestService(t)
	session := startSession(t, svc)

	debtor := &models.Player{ID: "debtor", SessionID: session.ID, Resources: 300, LoanBalance: 100, IsEmployed: true}
	clean := &models.Player{ID: "clean", SessionID: session.ID, Resources: 50, IsEmployed: true}
	if err := db.CreatePlayer(debtor); err != nil {
		t.Fatal(err)
	}
	if err := db.CreatePlayer(clean); err != nil {
		t.Fatal(err)
	}

	// Walk days 1..13 so the next advance passes day 14
	current := session
	for current.CurrentDay < game.FinalDay {
		current = mustOp(t, svc.AdvanceDay, session)
		current = mustOp(t, svc.ShowDayScenario, session)
	}

	final := mustOp(t, svc.AdvanceDay, session)
	if final.Phase != models.PhaseFinished {
		t.Fatalf("Phase = %s, want FINISHED", final.Phase)
	}

	settled, _ := db.GetPlayer("debtor")
	if settled.LoanBalance != 0 {
		t.Errorf("LoanBalance = %d, want 0", settled.LoanBalance)
	}
	if settled.Resources != 300-110 {
		t.Errorf("Resources = %d, want 190 (110 deducted)", settled.Resources)
	}

	untouched, _ := db.GetPlayer("clean")
	if untouched.Resources != 50 {
		t.Errorf("Resources = %d, want 50 (no loan, no deduction)", untouched.Resources)
	}

	// The game only ends once
	if _, err := svc.AdvanceDay(session.ID, session.HostID); !errors.Is(err, game.ErrInvalidTransition) {
		t.Errorf("err = %v, want ErrInvalidTransition", err)
	}
}

func TestTimerFireAdvancesOutOfTransition(t *testing.T) {
	svc, _ := newTestService(t)
	session := startSession(t, svc)
	current := mustOp(t, svc.AdvanceDay, session) // DAY_TRANSITION day 2

	svc.fireDayScenario(current.ID)

	after, _ := svc.Get(session.ID)
	if after.Phase != models.PhaseInGame {
		t.Errorf("Phase = %s, want IN_GAME after timer fire", after.Phase)
	}
}

func TestTimerFireAfterSkipIsNoOp(t *testing.T) {
	svc, _ := newTestService(t)
	session := startSession(t, svc)
	mustOp(t, svc.AdvanceDay, session)      // DAY_TRANSITION day 2
	mustOp(t, svc.ShowDayScenario, session) // host skips first
	mustOp(t, svc.ShowDayResult, session)

	// A stale timer firing now must not clobber the later phase
	svc.fireDayScenario(session.ID)

	after, _ := svc.Get(session.ID)
	if after.Phase != models.PhaseDayResult {
		t.Errorf("Phase = %s, want DAY_RESULT untouched by stale timer", after.Phase)
	}
}

func TestSetTransitionDuration(t *testing.T) {
	svc, _ := newTestService(t)
	session, _ := svc.Create()

	for _, ms := range []int{999, 0, -1, 10001} {
		if _, err := svc.SetTransitionDuration(session.ID, session.HostID, ms); !errors.Is(err, game.ErrInvalidDuration) {
			t.Errorf("SetTransitionDuration(%d): err = %v, want ErrInvalidDuration", ms, err)
		}
	}

	updated, err := svc.SetTransitionDuration(session.ID, session.HostID, 3000)
	if err != nil {
		t.Fatal(err)
	}
	if updated.TransitionDuration != 3000 {
		t.Errorf("TransitionDuration = %d, want 3000", updated.TransitionDuration)
	}
}

func TestSetHideHits(t *testing.T) {
	svc, _ := newTestService(t)
	session, _ := svc.Create()

	updated, err := svc.SetHideHits(session.ID, session.HostID, true)
	if err != nil {
		t.Fatal(err)
	}
	if !updated.HideHits {
		t.Error("HideHits = false, want true")
	}
}

func TestNotifyOnMutation(t *testing.T) {
	svc, _ := newTestService(t)
	var events []models.Phase
	svc.OnChange(func(s *models.Session) { events = append(events, s.Phase) })

	session, _ := svc.Create()
	mustOp(t, svc.StartInstructions, session)

	if len(events) != 1 || events[0] != models.PhaseInstructions {
		t.Errorf("events = %v, want [INSTRUCTIONS]", events)
	}
}
