package clash

import (
	"strings"
	"unicode/utf8"
)

// Endpoint templates.
const (
	EndpointClanSearch  = "clans"
	EndpointClan        = "clans/{tag}"
	EndpointClanMembers = "clans/{tag}/members"
	EndpointClanWarLog  = "clans/{tag}/warlog"
	EndpointCurrentWar  = "clans/{tag}/currentwar"
	EndpointPlayer      = "players/{tag}"
)

const minSearchNameLength = 3

// Paging selects a page of a collection endpoint. After and Before are cursors
// from a previous response; at most one may be set.
type Paging struct {
	Limit  int
	After  string
	Before string
}

func (p Paging) Validate() error {
	if p.After != "" && p.Before != "" {
		return NewError(ErrorTypeValidation, "either after or before may be set, not both")
	}
	if p.Limit < 0 {
		return NewError(ErrorTypeValidation, "limit must not be negative").WithContext("limit", p.Limit)
	}
	return nil
}

func (p Paging) apply(q map[string]any) {
	if p.Limit > 0 {
		q["limit"] = p.Limit
	}
	if p.After != "" {
		q["after"] = p.After
	}
	if p.Before != "" {
		q["before"] = p.Before
	}
}

func validateTag(tag string) error {
	if strings.TrimSpace(tag) == "" {
		return NewError(ErrorTypeValidation, "tag is required")
	}
	return nil
}

func tagParams(tag string) map[string]string {
	return map[string]string{"tag": strings.TrimSpace(tag)}
}

// ClanSearchRequest searches clans by name and filters.
type ClanSearchRequest struct {
	Name          string
	WarFrequency  WarFrequency
	LocationID    int
	MinMembers    int
	MaxMembers    int
	MinClanPoints int
	MinClanLevel  int
	Paging
}

func (r ClanSearchRequest) Endpoint() string                  { return EndpointClanSearch }
func (r ClanSearchRequest) PathParameters() map[string]string { return nil }

func (r ClanSearchRequest) QueryParametersToInclude() map[string]any {
	q := make(map[string]any)
	if name := strings.TrimSpace(r.Name); name != "" {
		q["name"] = name
	}
	if r.WarFrequency != WarFrequencyUnknown {
		q["warFrequency"] = r.WarFrequency
	}
	for k, v := range map[string]int{
		"locationId":    r.LocationID,
		"minMembers":    r.MinMembers,
		"maxMembers":    r.MaxMembers,
		"minClanPoints": r.MinClanPoints,
		"minClanLevel":  r.MinClanLevel,
	} {
		if v > 0 {
			q[k] = v
		}
	}
	r.Paging.apply(q)
	return q
}

func (r ClanSearchRequest) hasFilter() bool {
	return r.WarFrequency != WarFrequencyUnknown || r.LocationID > 0 || r.MinMembers > 0 ||
		r.MaxMembers > 0 || r.MinClanPoints > 0 || r.MinClanLevel > 0
}

func (r ClanSearchRequest) Validate() error {
	name := strings.TrimSpace(r.Name)
	if name != "" && utf8.RuneCountInString(name) < minSearchNameLength {
		return NewError(ErrorTypeValidation, "clan name must be at least 3 characters").WithContext("name", name)
	}
	if name == "" && !r.hasFilter() {
		return NewError(ErrorTypeValidation, "a clan name or at least one filter is required")
	}
	return r.Paging.Validate()
}

// ClanInfoRequest fetches a single clan by tag.
type ClanInfoRequest struct {
	Tag string
}

func (r ClanInfoRequest) Endpoint() string                         { return EndpointClan }
func (r ClanInfoRequest) PathParameters() map[string]string        { return tagParams(r.Tag) }
func (r ClanInfoRequest) QueryParametersToInclude() map[string]any { return nil }
func (r ClanInfoRequest) Validate() error                          { return validateTag(r.Tag) }

// ClanMembersRequest lists a clan's members.
type ClanMembersRequest struct {
	Tag string
	Paging
}

func (r ClanMembersRequest) Endpoint() string                  { return EndpointClanMembers }
func (r ClanMembersRequest) PathParameters() map[string]string { return tagParams(r.Tag) }

func (r ClanMembersRequest) QueryParametersToInclude() map[string]any {
	q := make(map[string]any)
	r.Paging.apply(q)
	return q
}

func (r ClanMembersRequest) Validate() error {
	if err := validateTag(r.Tag); err != nil {
		return err
	}
	return r.Paging.Validate()
}

// ClanWarLogRequest lists a clan's finished wars. The clan's war log must be public.
type ClanWarLogRequest struct {
	Tag string
	Paging
}

func (r ClanWarLogRequest) Endpoint() string                  { return EndpointClanWarLog }
func (r ClanWarLogRequest) PathParameters() map[string]string { return tagParams(r.Tag) }

func (r ClanWarLogRequest) QueryParametersToInclude() map[string]any {
	q := make(map[string]any)
	r.Paging.apply(q)
	return q
}

func (r ClanWarLogRequest) Validate() error {
	if err := validateTag(r.Tag); err != nil {
		return err
	}
	return r.Paging.Validate()
}

type CurrentWarRequest struct {
	Tag string
}

func (r CurrentWarRequest) Endpoint() string                         { return EndpointCurrentWar }
func (r CurrentWarRequest) PathParameters() map[string]string        { return tagParams(r.Tag) }
func (r CurrentWarRequest) QueryParametersToInclude() map[string]any { return nil }
func (r CurrentWarRequest) Validate() error                          { return validateTag(r.Tag) }

type PlayerInfoRequest struct {
	Tag string
}

func (r PlayerInfoRequest) Endpoint() string                         { return EndpointPlayer }
func (r PlayerInfoRequest) PathParameters() map[string]string        { return tagParams(r.Tag) }
func (r PlayerInfoRequest) QueryParametersToInclude() map[string]any { return nil }
func (r PlayerInfoRequest) Validate() error                          { return validateTag(r.Tag) }
