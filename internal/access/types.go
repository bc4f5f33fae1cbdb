// Package access is the role and invitation authorization engine: pure
// decision functions evaluated fresh on every call against an explicit
// acting-user snapshot. Denial is a normal false result; only an
// unrecognised authority constant is an error.
//
// Field names follow the backend REST payloads exactly so snapshots decode
// without translation.
package access

import (
	"encoding/json"

	"openconext.org/invite/internal/authority"
	"openconext.org/invite/internal/manage"
)

// User is the acting principal, loaded once per session from the backend.
type User struct {
	ID               string            `json:"id"`
	SuperUser        bool              `json:"superUser"`
	InstitutionAdmin bool              `json:"institutionAdmin"`
	OrganizationGUID string            `json:"organizationGUID,omitempty"`
	Applications     []UserApplication `json:"applications,omitempty"`
	UserRoles        []*UserRole       `json:"userRoles,omitempty"`
}

// UserApplication scopes an institution admin to an application. The backend
// emits either "manageId" or "id" depending on the endpoint.
type UserApplication struct {
	ID       string `json:"id,omitempty"`
	ManageID string `json:"manageId,omitempty"`
}

func (a UserApplication) manageIdentifier() string {
	if a.ManageID != "" {
		return a.ManageID
	}
	return a.ID
}

// ApplicationRef is the join stub inside a role's applicationUsages.
type ApplicationRef struct {
	ID          string `json:"id,omitempty"`
	ManageID    string `json:"manageId"`
	ManageType  string `json:"manageType,omitempty"`
	LandingPage string `json:"landingPage,omitempty"`
}

func (a ApplicationRef) manageIdentifier() string {
	if a.ManageID != "" {
		return a.ManageID
	}
	return a.ID
}

// ApplicationUsage links a role to one backend application.
type ApplicationUsage struct {
	Application ApplicationRef `json:"application"`
}

// Role is a grantable group membership tied to one or more backend
// applications. ApplicationUsages is the sole key used for ownership
// scoping; ApplicationMaps carries the resolved catalog records when the
// caller fetched them.
type Role struct {
	ID                      string             `json:"id"`
	Name                    string             `json:"name"`
	Description             string             `json:"description,omitempty"`
	ShortName               string             `json:"shortName,omitempty"`
	Identifier              string             `json:"identifier,omitempty"`
	DefaultExpiryDays       int                `json:"defaultExpiryDays,omitempty"`
	TeamsOrigin             bool               `json:"teamsOrigin,omitempty"`
	OverrideSettingsAllowed bool               `json:"overrideSettingsAllowed,omitempty"`
	EnforceEmailEquality    bool               `json:"enforceEmailEquality,omitempty"`
	EduIDOnly               bool               `json:"eduIDOnly,omitempty"`
	ApplicationUsages       []ApplicationUsage `json:"applicationUsages,omitempty"`
	ApplicationMaps         []manage.Entity    `json:"applicationMaps,omitempty"`
}

// UserInfo is the denormalized holder display data on a user role when
// viewed by an admin.
type UserInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Schac   string `json:"schacHomeOrganization,omitempty"`
	Created int64  `json:"createdAt,omitempty"`
}

// UserRole records that a user holds a role at a given authority. EndDate is
// epoch seconds, zero meaning the membership never expires.
type UserRole struct {
	Authority authority.Authority `json:"authority"`
	Role      *Role               `json:"role,omitempty"`
	EndDate   int64               `json:"endDate,omitempty"`
	UserInfo  *UserInfo           `json:"userInfo,omitempty"`
}

// Invitation is a pending grant offer. UserID is set when the invitation was
// self-issued by the recipient.
type Invitation struct {
	ID                string              `json:"id,omitempty"`
	Email             string              `json:"email,omitempty"`
	IntendedAuthority authority.Authority `json:"intended_authority,omitempty"`
	Roles             []RoleRef           `json:"roles,omitempty"`
	UserID            string              `json:"user_id,omitempty"`
	ExpiryDate        int64               `json:"expiryDate,omitempty"`
}

// UnmarshalJSON accepts both authority spellings the backend uses:
// "intended_authority" on invitation endpoints and "intendedAuthority" on
// others. The snake_case form wins when both are present.
func (inv *Invitation) UnmarshalJSON(data []byte) error {
	type alias Invitation
	aux := struct {
		*alias
		Snake authority.Authority `json:"intended_authority"`
		Camel authority.Authority `json:"intendedAuthority"`
	}{alias: (*alias)(inv)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	switch {
	case aux.Snake != "":
		inv.IntendedAuthority = aux.Snake
	case aux.Camel != "":
		inv.IntendedAuthority = aux.Camel
	}
	return nil
}
