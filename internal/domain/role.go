package domain

// Role represents the resolved role of a request's caller
// Identity resolution is trusted from the upstream auth layer
type Role string

const (
	RoleClient   Role = "client"
	RoleProvider Role = "provider"
	RoleAdmin    Role = "admin"
)

// Actor is the authenticated caller of an operation
type Actor struct {
	UserID int64
	Role   Role
}

// Relationship описывает отношение вызывающего к бронированию
type Relationship int

const (
	RelationNone Relationship = iota
	RelationClient
	RelationProvider
	RelationAdmin
)

// ResolveRelationship определяет отношение actor к бронированию
// Администратор всегда RelationAdmin независимо от участия в бронировании
func ResolveRelationship(actor Actor, b *Booking) Relationship {
	if actor.Role == RoleAdmin {
		return RelationAdmin
	}
	if actor.UserID == b.ClientID {
		return RelationClient
	}
	if actor.UserID == b.ProviderID {
		return RelationProvider
	}
	return RelationNone
}
