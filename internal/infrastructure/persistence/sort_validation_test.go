package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	cases := map[string]string{
		"":                         "DESC",
		"ASC":                      "ASC",
		"asc":                      "ASC",
		"  asc  ":                  "ASC",
		"DESC":                     "DESC",
		"desc":                     "DESC",
		"sideways":                 "DESC",
		"   ":                      "DESC",
		"ASC; DROP TABLE users;--": "DESC",
	}

	for input, want := range cases {
		assert.Equal(t, want, ValidateSortOrder(input), "input %q", input)
	}
}

func TestValidateSortField(t *testing.T) {
	allowed := map[string]bool{
		"id":         true,
		"created_at": true,
		"name":       true,
	}

	t.Run("whitelisted field passes through", func(t *testing.T) {
		assert.Equal(t, "name", ValidateSortField("name", allowed, "created_at"))
		assert.Equal(t, "name", ValidateSortField("  name  ", allowed, "created_at"))
	})

	t.Run("anything else falls back to default", func(t *testing.T) {
		for _, input := range []string{
			"",
			"   ",
			"nope",
			"NAME", // whitelist match is case sensitive
			"name users",
			"name'--",
			"id; DROP TABLE users;--",
		} {
			assert.Equal(t, "created_at", ValidateSortField(input, allowed, "created_at"), "input %q", input)
		}
	})

	t.Run("empty default stays empty on miss", func(t *testing.T) {
		assert.Equal(t, "", ValidateSortField("nope", allowed, ""))
	})
}

func TestSortFieldWhitelists(t *testing.T) {
	whitelists := map[string]map[string]bool{
		"CommonSortFields":      CommonSortFields,
		"UserSortFields":        UserSortFields,
		"EmployeeSortFields":    EmployeeSortFields,
		"ProductSortFields":     ProductSortFields,
		"InventorySortFields":   InventorySortFields,
		"TransactionSortFields": TransactionSortFields,
		"TaskSortFields":        TaskSortFields,
	}

	for name, whitelist := range whitelists {
		t.Run(name, func(t *testing.T) {
			for _, field := range []string{"id", "created_at", "updated_at"} {
				assert.True(t, whitelist[field], "%s must allow %q", name, field)
			}
		})
	}
}

func TestSortValidationRejectsInjectionPayloads(t *testing.T) {
	payloads := []string{
		"id; DROP TABLE users;--",
		"id' OR '1'='1",
		"id UNION SELECT * FROM users",
		"id, (SELECT password_hash FROM users)",
		"id/**/;DROP TABLE users",
		"id\n; DROP TABLE users",
		"1; EXEC xp_cmdshell('dir')",
	}

	for _, payload := range payloads {
		assert.Equal(t, "created_at", ValidateSortField(payload, UserSortFields, "created_at"), "payload %q", payload)
		assert.Equal(t, "DESC", ValidateSortOrder(payload), "payload %q", payload)
	}
}
