package clash

// BadgeURLs holds the image URLs for a clan badge or league icon.
type BadgeURLs struct {
	Small  string `json:"small,omitempty"`
	Medium string `json:"medium,omitempty"`
	Large  string `json:"large,omitempty"`
}

type Location struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	IsCountry   bool   `json:"isCountry"`
	CountryCode string `json:"countryCode,omitempty"`
}

type Cursors struct {
	After  string `json:"after,omitempty"`
	Before string `json:"before,omitempty"`
}

// Pager carries the cursors returned with a page of results.
type Pager struct {
	Cursors Cursors `json:"cursors"`
}

type League struct {
	ID       int       `json:"id"`
	Name     string    `json:"name"`
	IconURLs BadgeURLs `json:"iconUrls"`
}

// ClanResult is the clan summary returned by search.
type ClanResult struct {
	Tag          string         `json:"tag"`
	Name         string         `json:"name"`
	Type         MembershipType `json:"type"`
	ClanLevel    int            `json:"clanLevel"`
	ClanPoints   int            `json:"clanPoints"`
	Members      int            `json:"members"`
	WarWins      int            `json:"warWins"`
	WarFrequency WarFrequency   `json:"warFrequency"`
	Location     *Location      `json:"location,omitempty"`
	BadgeURLs    BadgeURLs      `json:"badgeUrls"`
}

// DetailedClanResult is a single clan including its member list.
type DetailedClanResult struct {
	ClanResult
	Description      string       `json:"description"`
	RequiredTrophies int          `json:"requiredTrophies"`
	WarWinStreak     int          `json:"warWinStreak"`
	IsWarLogPublic   bool         `json:"isWarLogPublic"`
	MemberList       []ClanMember `json:"memberList"`
}

type ClanSearchResponse struct {
	Items  []ClanResult `json:"items"`
	Paging Pager        `json:"paging"`
}

type ClanMember struct {
	Tag               string  `json:"tag"`
	Name              string  `json:"name"`
	Role              string  `json:"role"`
	ExpLevel          int     `json:"expLevel"`
	League            *League `json:"league,omitempty"`
	Trophies          int     `json:"trophies"`
	VersusTrophies    int     `json:"versusTrophies"`
	ClanRank          int     `json:"clanRank"`
	PreviousClanRank  int     `json:"previousClanRank"`
	Donations         int     `json:"donations"`
	DonationsReceived int     `json:"donationsReceived"`
}

type ClanMembersResponse struct {
	Items  []ClanMember `json:"items"`
	Paging Pager        `json:"paging"`
}

type WarAttack struct {
	AttackerTag           string  `json:"attackerTag"`
	DefenderTag           string  `json:"defenderTag"`
	Stars                 int     `json:"stars"`
	DestructionPercentage float64 `json:"destructionPercentage"`
	Order                 int     `json:"order"`
}

type WarMember struct {
	Tag                string      `json:"tag"`
	Name               string      `json:"name"`
	TownhallLevel      int         `json:"townhallLevel"`
	MapPosition        int         `json:"mapPosition"`
	Attacks            []WarAttack `json:"attacks,omitempty"`
	OpponentAttacks    int         `json:"opponentAttacks"`
	BestOpponentAttack *WarAttack  `json:"bestOpponentAttack,omitempty"`
}

// WarClan is one side of a war.
type WarClan struct {
	Tag                   string      `json:"tag"`
	Name                  string      `json:"name"`
	ClanLevel             int         `json:"clanLevel"`
	BadgeURLs             BadgeURLs   `json:"badgeUrls"`
	Attacks               int         `json:"attacks"`
	Stars                 int         `json:"stars"`
	DestructionPercentage float64     `json:"destructionPercentage"`
	ExpEarned             int         `json:"expEarned"`
	Members               []WarMember `json:"members,omitempty"`
}

// WarLogEntry is one finished war. Times use the API's compact form
// (20240301T090000.000Z) and are kept as returned.
type WarLogEntry struct {
	Result   WarOutcome `json:"result"`
	EndTime  string     `json:"endTime"`
	TeamSize int        `json:"teamSize"`
	Clan     WarClan    `json:"clan"`
	Opponent WarClan    `json:"opponent"`
}

type ClanWarLogResponse struct {
	Items  []WarLogEntry `json:"items"`
	Paging Pager         `json:"paging"`
}

// CurrentWar is the war a clan is preparing for or fighting. State is one of
// notInWar, preparation, inWar or warEnded.
type CurrentWar struct {
	State                string  `json:"state"`
	TeamSize             int     `json:"teamSize"`
	PreparationStartTime string  `json:"preparationStartTime,omitempty"`
	StartTime            string  `json:"startTime,omitempty"`
	EndTime              string  `json:"endTime,omitempty"`
	Clan                 WarClan `json:"clan"`
	Opponent             WarClan `json:"opponent"`
}

type ClanSummary struct {
	Tag       string    `json:"tag"`
	Name      string    `json:"name"`
	ClanLevel int       `json:"clanLevel"`
	BadgeURLs BadgeURLs `json:"badgeUrls"`
}

type Achievement struct {
	Name    string        `json:"name"`
	Info    string        `json:"info"`
	Stars   int           `json:"stars"`
	Value   int           `json:"value"`
	Target  int           `json:"target"`
	Village VillageTarget `json:"village"`
}

// Unit is a troop, hero or spell with its level progress.
type Unit struct {
	Name     string        `json:"name"`
	Level    int           `json:"level"`
	MaxLevel int           `json:"maxLevel"`
	Village  VillageTarget `json:"village"`
}

// Player is the player summary embedded in other results.
type Player struct {
	Tag      string  `json:"tag"`
	Name     string  `json:"name"`
	ExpLevel int     `json:"expLevel"`
	League   *League `json:"league,omitempty"`
}

type DetailedPlayer struct {
	Player
	TownhallLevel        int           `json:"townHallLevel"`
	BuilderHallLevel     int           `json:"builderHallLevel"`
	Trophies             int           `json:"trophies"`
	BestTrophies         int           `json:"bestTrophies"`
	VersusTrophies       int           `json:"versusTrophies"`
	BestVersusTrophies   int           `json:"bestVersusTrophies"`
	WarStars             int           `json:"warStars"`
	AttackWins           int           `json:"attackWins"`
	DefenseWins          int           `json:"defenseWins"`
	VersusBattleWins     int           `json:"versusBattleWins"`
	VersusBattleWinCount int           `json:"versusBattleWinCount"`
	Role                 string        `json:"role,omitempty"`
	Donations            int           `json:"donations"`
	DonationsReceived    int           `json:"donationsReceived"`
	Clan                 *ClanSummary  `json:"clan,omitempty"`
	Achievements         []Achievement `json:"achievements,omitempty"`
	Troops               []Unit        `json:"troops,omitempty"`
	Heroes               []Unit        `json:"heroes,omitempty"`
	Spells               []Unit        `json:"spells,omitempty"`
}

// ErrorResponse is the body the API returns with a failing status.
type ErrorResponse struct {
	Reason  string `json:"reason"`
	Message string `json:"message"`
}
