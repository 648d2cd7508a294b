package schema

import (
	"strings"

	"github.com/google/uuid"

	"github.com/atulpawar07/sp-cricket-hub/internal/entity"
)

const publicSchema = "public"

type (
	EventsTable      = Table[entity.Event, entity.EventInsert, entity.EventUpdate, EventColumns]
	PhotosTable      = Table[entity.Photo, entity.PhotoInsert, entity.PhotoUpdate, PhotoColumns]
	PlayerStatsTable = Table[entity.PlayerStat, entity.PlayerStatInsert, entity.PlayerStatUpdate, PlayerStatColumns]
	PlayersTable     = Table[entity.Player, entity.PlayerInsert, entity.PlayerUpdate, PlayerColumns]
	ProfilesTable    = Table[entity.Profile, entity.ProfileInsert, entity.ProfileUpdate, ProfileColumns]
	UserRolesTable   = Table[entity.UserRole, entity.UserRoleInsert, entity.UserRoleUpdate, UserRoleColumns]
)

type EventColumns struct {
	ID, Title, Description, EventDate, Location, ImageURL, CreatedBy, CreatedAt, UpdatedAt Column[entity.Event]
}

type PhotoColumns struct {
	ID, Title, Description, ImageURL, EventID, UploadedBy, CreatedAt Column[entity.Photo]
}

type PlayerStatColumns struct {
	ID, PlayerID, MatchDate                                     Column[entity.PlayerStat]
	RunsScored, BallsFaced, Fours, Sixes                        Column[entity.PlayerStat]
	WicketsTaken, RunsConceded, BallsBowled, Catches, Stumpings Column[entity.PlayerStat]
	CreatedBy, CreatedAt                                        Column[entity.PlayerStat]
}

type PlayerColumns struct {
	ID, Name, DateOfBirth, JerseyNumber, Position, ProfileID, CreatedAt, UpdatedAt Column[entity.Player]
}

type ProfileColumns struct {
	ID, UserID, FullName, AvatarURL, Phone, CreatedAt, UpdatedAt Column[entity.Profile]
}

type UserRoleColumns struct {
	ID, UserID, Role, CreatedAt Column[entity.UserRole]
}

// PublicTables has one field per table. Adding a table means adding a field
// here and its descriptor in newPublicSchema.
type PublicTables struct {
	Events      EventsTable
	Photos      PhotosTable
	PlayerStats PlayerStatsTable
	Players     PlayersTable
	Profiles    ProfilesTable
	UserRoles   UserRolesTable
}

// PublicViews and PublicCompositeTypes are empty in this schema.
type PublicViews struct{}

type PublicCompositeTypes struct{}

type PublicEnums struct {
	AppRole Enum[entity.AppRole]
}

// HasRoleArgs are the arguments of public.has_role.
type HasRoleArgs struct {
	UserID uuid.UUID
	Role   entity.AppRole
}

func (a HasRoleArgs) Params() []any {
	return []any{a.UserID, string(a.Role)}
}

type PublicFunctions struct {
	HasRole Function[HasRoleArgs, bool]
}

type PublicSchema struct {
	Name           string
	Tables         PublicTables
	Views          PublicViews
	Functions      PublicFunctions
	Enums          PublicEnums
	CompositeTypes PublicCompositeTypes
}

// Schemas is the explicit selector: Database.Public.Tables.Events.
type Schemas struct {
	Public PublicSchema
}

var (
	Database = Schemas{Public: newPublicSchema()}

	// Default is the unqualified selector and resolves to the public schema.
	Default = Database.Public
)

func newPublicSchema() PublicSchema {
	events := EventColumns{
		ID:          col[entity.Event]("id"),
		Title:       col[entity.Event]("title"),
		Description: col[entity.Event]("description"),
		EventDate:   col[entity.Event]("event_date"),
		Location:    col[entity.Event]("location"),
		ImageURL:    col[entity.Event]("image_url"),
		CreatedBy:   col[entity.Event]("created_by"),
		CreatedAt:   col[entity.Event]("created_at"),
		UpdatedAt:   col[entity.Event]("updated_at"),
	}
	photos := PhotoColumns{
		ID:          col[entity.Photo]("id"),
		Title:       col[entity.Photo]("title"),
		Description: col[entity.Photo]("description"),
		ImageURL:    col[entity.Photo]("image_url"),
		EventID:     col[entity.Photo]("event_id"),
		UploadedBy:  col[entity.Photo]("uploaded_by"),
		CreatedAt:   col[entity.Photo]("created_at"),
	}
	stats := PlayerStatColumns{
		ID:           col[entity.PlayerStat]("id"),
		PlayerID:     col[entity.PlayerStat]("player_id"),
		MatchDate:    col[entity.PlayerStat]("match_date"),
		RunsScored:   col[entity.PlayerStat]("runs_scored"),
		BallsFaced:   col[entity.PlayerStat]("balls_faced"),
		Fours:        col[entity.PlayerStat]("fours"),
		Sixes:        col[entity.PlayerStat]("sixes"),
		WicketsTaken: col[entity.PlayerStat]("wickets_taken"),
		RunsConceded: col[entity.PlayerStat]("runs_conceded"),
		BallsBowled:  col[entity.PlayerStat]("balls_bowled"),
		Catches:      col[entity.PlayerStat]("catches"),
		Stumpings:    col[entity.PlayerStat]("stumpings"),
		CreatedBy:    col[entity.PlayerStat]("created_by"),
		CreatedAt:    col[entity.PlayerStat]("created_at"),
	}
	players := PlayerColumns{
		ID:           col[entity.Player]("id"),
		Name:         col[entity.Player]("name"),
		DateOfBirth:  col[entity.Player]("date_of_birth"),
		JerseyNumber: col[entity.Player]("jersey_number"),
		Position:     col[entity.Player]("position"),
		ProfileID:    col[entity.Player]("profile_id"),
		CreatedAt:    col[entity.Player]("created_at"),
		UpdatedAt:    col[entity.Player]("updated_at"),
	}
	profiles := ProfileColumns{
		ID:        col[entity.Profile]("id"),
		UserID:    col[entity.Profile]("user_id"),
		FullName:  col[entity.Profile]("full_name"),
		AvatarURL: col[entity.Profile]("avatar_url"),
		Phone:     col[entity.Profile]("phone"),
		CreatedAt: col[entity.Profile]("created_at"),
		UpdatedAt: col[entity.Profile]("updated_at"),
	}
	roles := UserRoleColumns{
		ID:        col[entity.UserRole]("id"),
		UserID:    col[entity.UserRole]("user_id"),
		Role:      col[entity.UserRole]("role"),
		CreatedAt: col[entity.UserRole]("created_at"),
	}

	return PublicSchema{
		Name: publicSchema,
		Tables: PublicTables{
			Events: newTable[entity.Event, entity.EventInsert, entity.EventUpdate](publicSchema, "events", events,
				[]Column[entity.Event]{events.ID, events.Title, events.Description, events.EventDate, events.Location,
					events.ImageURL, events.CreatedBy, events.CreatedAt, events.UpdatedAt},
			),
			Photos: newTable[entity.Photo, entity.PhotoInsert, entity.PhotoUpdate](publicSchema, "photos", photos,
				[]Column[entity.Photo]{photos.ID, photos.Title, photos.Description, photos.ImageURL, photos.EventID,
					photos.UploadedBy, photos.CreatedAt},
				Relationship{
					ForeignKeyName:     "photos_event_id_fkey",
					Columns:            []string{"event_id"},
					ReferencedRelation: "events",
					ReferencedColumns:  []string{"id"},
				},
			),
			PlayerStats: newTable[entity.PlayerStat, entity.PlayerStatInsert, entity.PlayerStatUpdate](publicSchema, "player_stats", stats,
				[]Column[entity.PlayerStat]{stats.ID, stats.PlayerID, stats.MatchDate, stats.RunsScored, stats.BallsFaced,
					stats.Fours, stats.Sixes, stats.WicketsTaken, stats.RunsConceded, stats.BallsBowled, stats.Catches,
					stats.Stumpings, stats.CreatedBy, stats.CreatedAt},
				Relationship{
					ForeignKeyName:     "player_stats_player_id_fkey",
					Columns:            []string{"player_id"},
					ReferencedRelation: "players",
					ReferencedColumns:  []string{"id"},
				},
			),
			Players: newTable[entity.Player, entity.PlayerInsert, entity.PlayerUpdate](publicSchema, "players", players,
				[]Column[entity.Player]{players.ID, players.Name, players.DateOfBirth, players.JerseyNumber,
					players.Position, players.ProfileID, players.CreatedAt, players.UpdatedAt},
				Relationship{
					ForeignKeyName:     "players_profile_id_fkey",
					Columns:            []string{"profile_id"},
					ReferencedRelation: "profiles",
					ReferencedColumns:  []string{"id"},
				},
			),
			Profiles: newTable[entity.Profile, entity.ProfileInsert, entity.ProfileUpdate](publicSchema, "profiles", profiles,
				[]Column[entity.Profile]{profiles.ID, profiles.UserID, profiles.FullName, profiles.AvatarURL,
					profiles.Phone, profiles.CreatedAt, profiles.UpdatedAt},
			),
			UserRoles: newTable[entity.UserRole, entity.UserRoleInsert, entity.UserRoleUpdate](publicSchema, "user_roles", roles,
				[]Column[entity.UserRole]{roles.ID, roles.UserID, roles.Role, roles.CreatedAt},
			),
		},
		Enums: PublicEnums{
			AppRole: Enum[entity.AppRole]{schema: publicSchema, name: "app_role", values: entity.AppRoles},
		},
		Functions: PublicFunctions{
			HasRole: Function[HasRoleArgs, bool]{
				schema: publicSchema,
				name:   "has_role",
				params: []Param{
					{Name: "_user_id", Type: "uuid"},
					{Name: "_role", Type: publicSchema + ".app_role"},
				},
				returns: "boolean",
			},
		},
	}
}

// TableMetas lists every table of the schema in declaration order.
func (s PublicSchema) TableMetas() []Meta {
	t := s.Tables
	return []Meta{t.Events.Meta, t.Photos.Meta, t.PlayerStats.Meta, t.Players.Meta, t.Profiles.Meta, t.UserRoles.Meta}
}

// Models returns a zero Row per table, for migrations.
func (s PublicSchema) Models() []any {
	return []any{
		&entity.Profile{},
		&entity.Player{},
		&entity.PlayerStat{},
		&entity.Event{},
		&entity.Photo{},
		&entity.UserRole{},
	}
}

// Lookup finds a table by name, optionally qualified as "public.events".
// Typed code selects fields on Default instead; this is for diagnostics.
func Lookup(name string) (Meta, bool) {
	if schemaName, table, ok := strings.Cut(name, "."); ok {
		if schemaName != publicSchema {
			return Meta{}, false
		}
		name = table
	}
	for _, m := range Database.Public.TableMetas() {
		if m.name == name {
			return m, true
		}
	}
	return Meta{}, false
}
