package bootstrap

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/atulpawar07/sp-cricket-hub/internal/entity"
	"github.com/atulpawar07/sp-cricket-hub/internal/schema"
)

// onDelete holds the delete rule of every declared foreign key. Keys missing
// here fall back to NO ACTION.
var onDelete = map[string]string{
	"photos_event_id_fkey":        "SET NULL",
	"player_stats_player_id_fkey": "CASCADE",
	"players_profile_id_fkey":     "SET NULL",
}

// accountKeys tie rows to the accounts table, which is not part of the
// public contract.
var accountKeys = []foreignKey{
	{table: "profiles", name: "profiles_user_id_fkey", column: "user_id", references: "accounts", onDelete: "CASCADE"},
	{table: "user_roles", name: "user_roles_user_id_fkey", column: "user_id", references: "accounts", onDelete: "CASCADE"},
}

type foreignKey struct {
	table      string
	name       string
	column     string
	references string
	onDelete   string
}

// Migrate brings the database up to the declared schema. Every step is safe
// to repeat.
func Migrate(db *gorm.DB) error {
	if err := db.Exec(schema.Default.Enums.AppRole.CreateSQL()).Error; err != nil {
		return fmt.Errorf("create enum: %w", err)
	}

	models := append([]any{&entity.Account{}}, schema.Default.Models()...)
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	for _, fk := range foreignKeys() {
		if err := db.Exec(fk.sql()).Error; err != nil {
			return fmt.Errorf("add constraint %s: %w", fk.name, err)
		}
	}

	if err := db.Exec(hasRoleSQL(schema.Default.Functions.HasRole)).Error; err != nil {
		return fmt.Errorf("create function has_role: %w", err)
	}
	return nil
}

func foreignKeys() []foreignKey {
	var out []foreignKey
	for _, meta := range schema.Default.TableMetas() {
		for _, rel := range meta.Relationships() {
			rule, ok := onDelete[rel.ForeignKeyName]
			if !ok {
				rule = "NO ACTION"
			}
			out = append(out, foreignKey{
				table:      meta.Name(),
				name:       rel.ForeignKeyName,
				column:     strings.Join(rel.Columns, ", "),
				references: rel.ReferencedRelation,
				onDelete:   rule,
			})
		}
	}
	return append(out, accountKeys...)
}

func (fk foreignKey) sql() string {
	return fmt.Sprintf(`DO $$ BEGIN
	IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = '%s') THEN
		ALTER TABLE public.%s ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES public.%s (id) ON DELETE %s;
	END IF;
END $$;`, fk.name, fk.table, fk.name, fk.column, fk.references, fk.onDelete)
}

// hasRoleSQL renders the definition of has_role from its declared signature.
func hasRoleSQL(fn schema.Function[schema.HasRoleArgs, bool]) string {
	params := make([]string, 0, len(fn.Params()))
	for _, p := range fn.Params() {
		params = append(params, p.Name+" "+p.Type)
	}
	args := fn.Params()

	return fmt.Sprintf(`CREATE OR REPLACE FUNCTION %s(%s)
RETURNS %s
LANGUAGE sql
STABLE
SECURITY DEFINER
SET search_path = public
AS $$
	SELECT EXISTS (
		SELECT 1 FROM public.user_roles WHERE user_id = %s AND role = %s
	)
$$;`, fn.QualifiedName(), strings.Join(params, ", "), fn.Returns(), args[0].Name, args[1].Name)
}
