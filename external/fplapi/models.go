package fplapi

// Upstream payload shapes. Field names follow the wire format; only the
// fields the service consumes are declared, unknown fields are ignored.

type Bootstrap struct {
	Events       []EventItem       `json:"events"`
	Teams        []TeamItem        `json:"teams"`
	Elements     []ElementItem     `json:"elements"`
	ElementTypes []ElementTypeItem `json:"element_types"`
	TotalPlayers int               `json:"total_players"`
}

type EventItem struct {
	ID                int            `json:"id"`
	Name              string         `json:"name"`
	DeadlineTime      string         `json:"deadline_time"`
	Finished          bool           `json:"finished"`
	DataChecked       bool           `json:"data_checked"`
	IsPrevious        bool           `json:"is_previous"`
	IsCurrent         bool           `json:"is_current"`
	IsNext            bool           `json:"is_next"`
	AverageEntryScore int            `json:"average_entry_score"`
	HighestScore      *int           `json:"highest_score"`
	TransfersMade     int            `json:"transfers_made"`
	MostCaptained     *int           `json:"most_captained"`
	MostSelected      *int           `json:"most_selected"`
	MostTransferredIn *int           `json:"most_transferred_in"`
	TopElement        *int           `json:"top_element"`
	TopElementInfo    *TopElement    `json:"top_element_info"`
	ChipPlays         []ChipPlayItem `json:"chip_plays"`
}

type TopElement struct {
	ID     int `json:"id"`
	Points int `json:"points"`
}

type ChipPlayItem struct {
	ChipName  string `json:"chip_name"`
	NumPlayed int    `json:"num_played"`
}

type TeamItem struct {
	ID                  int    `json:"id"`
	Code                int    `json:"code"`
	Name                string `json:"name"`
	ShortName           string `json:"short_name"`
	Strength            int    `json:"strength"`
	StrengthOverallHome int    `json:"strength_overall_home"`
	StrengthOverallAway int    `json:"strength_overall_away"`
	StrengthAttackHome  int    `json:"strength_attack_home"`
	StrengthAttackAway  int    `json:"strength_attack_away"`
	StrengthDefenceHome int    `json:"strength_defence_home"`
	StrengthDefenceAway int    `json:"strength_defence_away"`
	Position            int    `json:"position"`
	Played              int    `json:"played"`
	Win                 int    `json:"win"`
	Draw                int    `json:"draw"`
	Loss                int    `json:"loss"`
	Points              int    `json:"points"`
}

type ElementItem struct {
	ID                       int    `json:"id"`
	WebName                  string `json:"web_name"`
	FirstName                string `json:"first_name"`
	SecondName               string `json:"second_name"`
	Team                     int    `json:"team"`
	ElementType              int    `json:"element_type"`
	Status                   string `json:"status"`
	News                     string `json:"news"`
	NewsAdded                string `json:"news_added"`
	NowCost                  int    `json:"now_cost"`
	CostChangeEvent          int    `json:"cost_change_event"`
	CostChangeStart          int    `json:"cost_change_start"`
	TotalPoints              int    `json:"total_points"`
	EventPoints              int    `json:"event_points"`
	PointsPerGame            string `json:"points_per_game"`
	Form                     string `json:"form"`
	SelectedByPercent        string `json:"selected_by_percent"`
	Minutes                  int    `json:"minutes"`
	GoalsScored              int    `json:"goals_scored"`
	Assists                  int    `json:"assists"`
	CleanSheets              int    `json:"clean_sheets"`
	GoalsConceded            int    `json:"goals_conceded"`
	OwnGoals                 int    `json:"own_goals"`
	PenaltiesSaved           int    `json:"penalties_saved"`
	PenaltiesMissed          int    `json:"penalties_missed"`
	YellowCards              int    `json:"yellow_cards"`
	RedCards                 int    `json:"red_cards"`
	Saves                    int    `json:"saves"`
	Bonus                    int    `json:"bonus"`
	BPS                      int    `json:"bps"`
	Influence                string `json:"influence"`
	Creativity               string `json:"creativity"`
	Threat                   string `json:"threat"`
	ICTIndex                 string `json:"ict_index"`
	ExpectedGoals            string `json:"expected_goals"`
	ExpectedAssists          string `json:"expected_assists"`
	ExpectedGoalInvolvements string `json:"expected_goal_involvements"`
	ChanceOfPlayingNextRound *int   `json:"chance_of_playing_next_round"`
	TransfersInEvent         int    `json:"transfers_in_event"`
	TransfersOutEvent        int    `json:"transfers_out_event"`
	DreamteamCount           int    `json:"dreamteam_count"`
	InDreamteam              bool   `json:"in_dreamteam"`
}

type ElementTypeItem struct {
	ID                int    `json:"id"`
	SingularNameShort string `json:"singular_name_short"`
	PluralName        string `json:"plural_name"`
	SquadSelect       int    `json:"squad_select"`
	SquadMinPlay      int    `json:"squad_min_play"`
	SquadMaxPlay      int    `json:"squad_max_play"`
}

type FixtureItem struct {
	ID                  int    `json:"id"`
	Code                int    `json:"code"`
	Event               *int   `json:"event"`
	TeamH               int    `json:"team_h"`
	TeamA               int    `json:"team_a"`
	TeamHScore          *int   `json:"team_h_score"`
	TeamAScore          *int   `json:"team_a_score"`
	KickoffTime         string `json:"kickoff_time"`
	Started             bool   `json:"started"`
	Finished            bool   `json:"finished"`
	FinishedProvisional bool   `json:"finished_provisional"`
	Minutes             int    `json:"minutes"`
	TeamHDifficulty     int    `json:"team_h_difficulty"`
	TeamADifficulty     int    `json:"team_a_difficulty"`
}

type EventLive struct {
	Elements []LiveElement `json:"elements"`
}

type LiveElement struct {
	ID    int       `json:"id"`
	Stats LiveStats `json:"stats"`
}

type LiveStats struct {
	Minutes       int    `json:"minutes"`
	GoalsScored   int    `json:"goals_scored"`
	Assists       int    `json:"assists"`
	CleanSheets   int    `json:"clean_sheets"`
	GoalsConceded int    `json:"goals_conceded"`
	YellowCards   int    `json:"yellow_cards"`
	RedCards      int    `json:"red_cards"`
	Saves         int    `json:"saves"`
	Bonus         int    `json:"bonus"`
	BPS           int    `json:"bps"`
	TotalPoints   int    `json:"total_points"`
	InDreamteam   bool   `json:"in_dreamteam"`
	Influence     string `json:"influence"`
	Creativity    string `json:"creativity"`
	Threat        string `json:"threat"`
}

type Entry struct {
	ID                       int    `json:"id"`
	PlayerFirstName          string `json:"player_first_name"`
	PlayerLastName           string `json:"player_last_name"`
	Name                     string `json:"name"`
	PlayerRegionName         string `json:"player_region_name"`
	StartedEvent             int    `json:"started_event"`
	CurrentEvent             int    `json:"current_event"`
	SummaryOverallPoints     int    `json:"summary_overall_points"`
	SummaryOverallRank       int    `json:"summary_overall_rank"`
	SummaryEventPoints       int    `json:"summary_event_points"`
	SummaryEventRank         int    `json:"summary_event_rank"`
	LastDeadlineValue        int    `json:"last_deadline_value"`
	LastDeadlineBank         int    `json:"last_deadline_bank"`
	LastDeadlineTotalTransfers int  `json:"last_deadline_total_transfers"`
	Leagues                  EntryLeagues `json:"leagues"`
}

type EntryLeagues struct {
	Classic []ClassicLeagueEntry `json:"classic"`
}

type ClassicLeagueEntry struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	EntryRank   int    `json:"entry_rank"`
	EntryLastRank int  `json:"entry_last_rank"`
	LeagueType  string `json:"league_type"`
}

type EntryHistory struct {
	Current []EntryHistoryRound `json:"current"`
	Past    []EntryHistorySeason `json:"past"`
	Chips   []EntryChip          `json:"chips"`
}

type EntryHistoryRound struct {
	Event              int `json:"event"`
	Points             int `json:"points"`
	TotalPoints        int `json:"total_points"`
	Rank               int `json:"rank"`
	OverallRank        int `json:"overall_rank"`
	Bank               int `json:"bank"`
	Value              int `json:"value"`
	EventTransfers     int `json:"event_transfers"`
	EventTransfersCost int `json:"event_transfers_cost"`
	PointsOnBench      int `json:"points_on_bench"`
}

type EntryHistorySeason struct {
	SeasonName  string `json:"season_name"`
	TotalPoints int    `json:"total_points"`
	Rank        int    `json:"rank"`
}

type EntryChip struct {
	Name  string `json:"name"`
	Event int    `json:"event"`
	Time  string `json:"time"`
}

type TransferItem struct {
	ElementIn     int    `json:"element_in"`
	ElementInCost int    `json:"element_in_cost"`
	ElementOut    int    `json:"element_out"`
	ElementOutCost int   `json:"element_out_cost"`
	Entry         int    `json:"entry"`
	Event         int    `json:"event"`
	Time          string `json:"time"`
}

type Picks struct {
	ActiveChip    string         `json:"active_chip"`
	AutomaticSubs []AutomaticSub `json:"automatic_subs"`
	EntryHistory  EntryHistoryRound `json:"entry_history"`
	Picks         []PickItem     `json:"picks"`
}

type AutomaticSub struct {
	Entry      int `json:"entry"`
	ElementIn  int `json:"element_in"`
	ElementOut int `json:"element_out"`
	Event      int `json:"event"`
}

type PickItem struct {
	Element       int  `json:"element"`
	Position      int  `json:"position"`
	Multiplier    int  `json:"multiplier"`
	IsCaptain     bool `json:"is_captain"`
	IsViceCaptain bool `json:"is_vice_captain"`
}

type ElementSummary struct {
	Fixtures []ElementFixture `json:"fixtures"`
	History  []ElementRound   `json:"history"`
	HistoryPast []ElementSeason `json:"history_past"`
}

type ElementFixture struct {
	ID          int    `json:"id"`
	Event       *int   `json:"event"`
	TeamH       int    `json:"team_h"`
	TeamA       int    `json:"team_a"`
	IsHome      bool   `json:"is_home"`
	Difficulty  int    `json:"difficulty"`
	KickoffTime string `json:"kickoff_time"`
}

type ElementRound struct {
	Element       int  `json:"element"`
	Fixture       int  `json:"fixture"`
	Round         int  `json:"round"`
	TotalPoints   int  `json:"total_points"`
	Minutes       int  `json:"minutes"`
	GoalsScored   int  `json:"goals_scored"`
	Assists       int  `json:"assists"`
	CleanSheets   int  `json:"clean_sheets"`
	Bonus         int  `json:"bonus"`
	Value         int  `json:"value"`
	WasHome       bool `json:"was_home"`
	OpponentTeam  int  `json:"opponent_team"`
}

type ElementSeason struct {
	SeasonName  string `json:"season_name"`
	TotalPoints int    `json:"total_points"`
	Minutes     int    `json:"minutes"`
	GoalsScored int    `json:"goals_scored"`
	Assists     int    `json:"assists"`
}

type LeagueStandings struct {
	League    LeagueInfo      `json:"league"`
	Standings StandingsPage   `json:"standings"`
}

type LeagueInfo struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Created string `json:"created"`
}

type StandingsPage struct {
	HasNext bool           `json:"has_next"`
	Page    int            `json:"page"`
	Results []StandingRow  `json:"results"`
}

type StandingRow struct {
	ID         int    `json:"id"`
	Entry      int    `json:"entry"`
	EntryName  string `json:"entry_name"`
	PlayerName string `json:"player_name"`
	Rank       int    `json:"rank"`
	LastRank   int    `json:"last_rank"`
	EventTotal int    `json:"event_total"`
	Total      int    `json:"total"`
}

type EventStatus struct {
	Status  []EventStatusDay `json:"status"`
	Leagues string           `json:"leagues"`
}

type EventStatusDay struct {
	BonusAdded bool   `json:"bonus_added"`
	Date       string `json:"date"`
	Event      int    `json:"event"`
	Points     string `json:"points"`
}

type DreamTeam struct {
	TopPlayer TopPlayer       `json:"top_player"`
	Team      []DreamTeamPick `json:"team"`
}

type TopPlayer struct {
	ID     int `json:"id"`
	Points int `json:"points"`
}

type DreamTeamPick struct {
	Element  int `json:"element"`
	Points   int `json:"points"`
	Position int `json:"position"`
}

type SetPieceNote struct {
	ID             int                `json:"id"`
	Notes          []SetPieceNoteItem `json:"notes"`
}

type SetPieceNoteItem struct {
	ExternalLink bool   `json:"external_link"`
	InfoMessage  string `json:"info_message"`
	SourceLink   string `json:"source_link"`
}

type SetPieceNotes struct {
	LastUpdated string         `json:"last_updated"`
	Teams       []SetPieceNote `json:"teams"`
}

type MyTeam struct {
	Picks     []PickItem       `json:"picks"`
	Chips     []MyTeamChip     `json:"chips"`
	Transfers MyTeamTransfers  `json:"transfers"`
}

type MyTeamChip struct {
	Name       string `json:"name"`
	StatusForEntry string `json:"status_for_entry"`
}

type MyTeamTransfers struct {
	Bank  int    `json:"bank"`
	Value int    `json:"value"`
	Limit *int   `json:"limit"`
	Made  int    `json:"made"`
	Status string `json:"status"`
}

type Me struct {
	Player MePlayer `json:"player"`
}

type MePlayer struct {
	Entry     int    `json:"entry"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}
