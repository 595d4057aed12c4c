package action

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAction_Resolve(t *testing.T) {
	tests := []struct {
		name   string
		action Action
		ids    []string
		want   string
		wantOK bool
	}{
		{"zero value", Action{}, []string{"1"}, "", false},
		{"static", Static("/tickets/"), []string{"1", "2"}, "/tickets/", true},
		{"template single", Template("/ticket/delete/0/"), []string{"42"}, "/ticket/delete/42/", true},
		{"template bulk", Template("/ticket/close/bulk/0/"), []string{"3", "7"}, "/ticket/close/bulk/3,7/", true},
		{"template too short", Template("/"), []string{"1"}, "", false},
		{"computed nil", Computed(nil), []string{"1"}, "", false},
		{
			"per row",
			PerRow(func(id string) (string, bool) { return "/delete/" + id + "/", true }),
			[]string{"42"},
			"/delete/42/",
			true,
		},
		{
			"per row without ids",
			PerRow(func(id string) (string, bool) { return "/delete/" + id + "/", true }),
			nil,
			"",
			false,
		},
		{
			"computed undefined",
			Computed(func(ids []string) (string, bool) { return "", false }),
			[]string{"3", "7"},
			"",
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.action.Resolve(tt.ids)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAction_ComputedReceivesOrderedIDs(t *testing.T) {
	var seen []string
	a := Computed(func(ids []string) (string, bool) {
		seen = ids
		return "/x/", true
	})

	a.Resolve([]string{"9", "3", "7"})

	assert.Equal(t, []string{"9", "3", "7"}, seen)
}

func TestAction_KindAndString(t *testing.T) {
	assert.Equal(t, KindNone, Action{}.Kind())
	assert.Equal(t, KindStatic, Static("/a/").Kind())
	assert.Equal(t, KindTemplate, Template("/a/0/").Kind())
	assert.Equal(t, KindComputed, PerRow(nil).Kind())

	assert.Equal(t, "static(/a/)", Static("/a/").String())
	assert.Equal(t, "none", Action{}.String())
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "Remove 2 items?", Format("Remove {0} items?", 2))
	assert.Equal(t, "a b a", Format("{0} {1} {0}", "a", "b"))
	assert.Equal(t, "no placeholders", Format("no placeholders", 1))
	assert.Equal(t, "{1} stays", Format("{1} stays", "x"))
	assert.Equal(t, "{0}", Format("{0}"))
}
