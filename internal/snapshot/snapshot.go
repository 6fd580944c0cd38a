// Package snapshot holds an immutable in-memory view of the bootstrap data.
// A Snapshot is built once per refresh and swapped atomically behind a
// Handle; readers never observe a partially built view.
package snapshot

import (
	"errors"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/benchboost/benchboost/internal/domain/fixture"
	"github.com/benchboost/benchboost/internal/domain/gameweek"
	"github.com/benchboost/benchboost/internal/domain/player"
	"github.com/benchboost/benchboost/internal/domain/team"
)

var (
	ErrNotReady       = errors.New("snapshot not built yet")
	ErrPlayerNotFound = errors.New("player not found")
	ErrTeamNotFound   = errors.New("team not found")
	ErrNoGameweek     = errors.New("no matching gameweek")
)

// Snapshot is a read-only view of players, teams, gameweeks and fixtures.
// Players flagged unavailable upstream are excluded from the pool.
type Snapshot struct {
	builtAt time.Time

	players     []player.Player
	playersByID map[int]int
	nameIndex   map[string]int

	teams        []team.Team
	teamsByID    map[int]int
	teamNameIdx  map[string]int
	teamShortIdx map[string]int

	gameweeks []gameweek.Gameweek
	current   int
	next      int

	fixtures        []fixture.Fixture
	fixturesByEvent map[int][]int
}

// Build constructs a Snapshot from freshly fetched bootstrap data. Inputs
// are copied; the caller may reuse the slices afterwards.
func Build(players []player.Player, teams []team.Team, gameweeks []gameweek.Gameweek, fixtures []fixture.Fixture) *Snapshot {
	s := &Snapshot{
		builtAt:         time.Now(),
		playersByID:     make(map[int]int),
		nameIndex:       make(map[string]int),
		teamsByID:       make(map[int]int, len(teams)),
		teamNameIdx:     make(map[string]int, len(teams)),
		teamShortIdx:    make(map[string]int, len(teams)),
		fixturesByEvent: make(map[int][]int),
		current:         -1,
		next:            -1,
	}

	s.players = make([]player.Player, 0, len(players))
	for _, p := range players {
		if !p.Available() {
			continue
		}
		idx := len(s.players)
		s.players = append(s.players, p)
		s.playersByID[p.ID] = idx
		s.nameIndex[strings.ToLower(p.WebName)] = idx
		s.nameIndex[strings.ToLower(p.FullName())] = idx
	}

	s.teams = make([]team.Team, len(teams))
	copy(s.teams, teams)
	for i, t := range s.teams {
		s.teamsByID[t.ID] = i
		s.teamNameIdx[strings.ToLower(t.Name)] = i
		s.teamShortIdx[strings.ToLower(t.ShortName)] = i
	}

	s.gameweeks = make([]gameweek.Gameweek, len(gameweeks))
	copy(s.gameweeks, gameweeks)
	for i, gw := range s.gameweeks {
		if gw.IsCurrent {
			s.current = i
		}
		if gw.IsNext {
			s.next = i
		}
	}

	s.fixtures = make([]fixture.Fixture, len(fixtures))
	copy(s.fixtures, fixtures)
	sort.SliceStable(s.fixtures, func(i, j int) bool {
		a, b := s.fixtures[i], s.fixtures[j]
		switch {
		case a.Event == nil && b.Event == nil:
			return a.ID < b.ID
		case a.Event == nil:
			return false
		case b.Event == nil:
			return true
		case *a.Event != *b.Event:
			return *a.Event < *b.Event
		default:
			return a.ID < b.ID
		}
	})
	for i, f := range s.fixtures {
		if f.Event != nil {
			s.fixturesByEvent[*f.Event] = append(s.fixturesByEvent[*f.Event], i)
		}
	}

	return s
}

func (s *Snapshot) BuiltAt() time.Time { return s.builtAt }

// Players returns the selectable player pool.
func (s *Snapshot) Players() []player.Player {
	out := make([]player.Player, len(s.players))
	copy(out, s.players)
	return out
}

func (s *Snapshot) PlayerByID(id int) (player.Player, error) {
	idx, ok := s.playersByID[id]
	if !ok {
		return player.Player{}, ErrPlayerNotFound
	}
	return s.players[idx], nil
}

// PlayerByName resolves a player by name: exact match on web name or full
// name first, then substring containment, then a token match where every
// query token appears in the candidate's name.
func (s *Snapshot) PlayerByName(name string) (player.Player, error) {
	query := strings.ToLower(strings.TrimSpace(name))
	if query == "" {
		return player.Player{}, ErrPlayerNotFound
	}

	if idx, ok := s.nameIndex[query]; ok {
		return s.players[idx], nil
	}

	for i, p := range s.players {
		full := strings.ToLower(p.FullName())
		web := strings.ToLower(p.WebName)
		if strings.Contains(full, query) || strings.Contains(web, query) {
			return s.players[i], nil
		}
	}

	queryTokens := strings.Fields(query)
	if len(queryTokens) == 0 {
		return player.Player{}, ErrPlayerNotFound
	}
	for i, p := range s.players {
		candidate := strings.ToLower(p.FullName() + " " + p.WebName)
		tokens := strings.Fields(candidate)
		if containsAll(tokens, queryTokens) {
			return s.players[i], nil
		}
	}

	return player.Player{}, ErrPlayerNotFound
}

// PlayersByTeam returns the pool players belonging to a team.
func (s *Snapshot) PlayersByTeam(teamID int) []player.Player {
	var out []player.Player
	for _, p := range s.players {
		if p.TeamID == teamID {
			out = append(out, p)
		}
	}
	return out
}

func (s *Snapshot) Teams() []team.Team {
	out := make([]team.Team, len(s.teams))
	copy(out, s.teams)
	return out
}

func (s *Snapshot) TeamByID(id int) (team.Team, error) {
	idx, ok := s.teamsByID[id]
	if !ok {
		return team.Team{}, ErrTeamNotFound
	}
	return s.teams[idx], nil
}

// TeamByName matches the full name or the short name, then falls back to
// substring containment.
func (s *Snapshot) TeamByName(name string) (team.Team, error) {
	query := strings.ToLower(strings.TrimSpace(name))
	if query == "" {
		return team.Team{}, ErrTeamNotFound
	}

	if idx, ok := s.teamNameIdx[query]; ok {
		return s.teams[idx], nil
	}
	if idx, ok := s.teamShortIdx[query]; ok {
		return s.teams[idx], nil
	}

	for i, t := range s.teams {
		if strings.Contains(strings.ToLower(t.Name), query) {
			return s.teams[i], nil
		}
	}

	return team.Team{}, ErrTeamNotFound
}

func (s *Snapshot) Gameweeks() []gameweek.Gameweek {
	out := make([]gameweek.Gameweek, len(s.gameweeks))
	copy(out, s.gameweeks)
	return out
}

func (s *Snapshot) CurrentGameweek() (gameweek.Gameweek, error) {
	if s.current < 0 {
		return gameweek.Gameweek{}, ErrNoGameweek
	}
	return s.gameweeks[s.current], nil
}

func (s *Snapshot) NextGameweek() (gameweek.Gameweek, error) {
	if s.next < 0 {
		return gameweek.Gameweek{}, ErrNoGameweek
	}
	return s.gameweeks[s.next], nil
}

func (s *Snapshot) GameweekByID(id int) (gameweek.Gameweek, error) {
	for _, gw := range s.gameweeks {
		if gw.ID == id {
			return gw, nil
		}
	}
	return gameweek.Gameweek{}, ErrNoGameweek
}

func (s *Snapshot) FixturesByEvent(event int) []fixture.Fixture {
	idxs := s.fixturesByEvent[event]
	out := make([]fixture.Fixture, 0, len(idxs))
	for _, i := range idxs {
		out = append(out, s.fixtures[i])
	}
	return out
}

// UpcomingFixtures returns the team's next fixtures from the given event
// onward, ordered by event, capped at limit.
func (s *Snapshot) UpcomingFixtures(teamID, fromEvent, limit int) []fixture.Fixture {
	if limit <= 0 {
		limit = 5
	}

	var out []fixture.Fixture
	for _, f := range s.fixtures {
		if f.Event == nil || *f.Event < fromEvent || f.Finished {
			continue
		}
		if !f.Involves(teamID) {
			continue
		}
		out = append(out, f)
		if len(out) >= limit {
			break
		}
	}
	return out
}

func containsAll(haystack, needles []string) bool {
	for _, n := range needles {
		found := false
		for _, h := range haystack {
			if h == n {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Handle is the shared pointer through which readers observe the latest
// Snapshot. Swap is the only mutation; loads are wait-free.
type Handle struct {
	ptr atomic.Pointer[Snapshot]
}

func NewHandle() *Handle {
	return &Handle{}
}

// Current returns the latest snapshot or ErrNotReady before the first build.
func (h *Handle) Current() (*Snapshot, error) {
	s := h.ptr.Load()
	if s == nil {
		return nil, ErrNotReady
	}
	return s, nil
}

func (h *Handle) Swap(s *Snapshot) {
	if s == nil {
		return
	}
	h.ptr.Store(s)
}

// Ready reports whether a snapshot has been built.
func (h *Handle) Ready() bool {
	return h.ptr.Load() != nil
}
