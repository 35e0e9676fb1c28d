package biz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDirectorNames(t *testing.T) {
	tests := []struct {
		name string
		crew []*CrewMember
		want string
	}{
		{"no crew", nil, ""},
		{"no director", []*CrewMember{{Name: "A", Job: "Producer"}}, ""},
		{"one director", []*CrewMember{{Name: "A", Job: "Director"}}, "A"},
		{
			name: "co-directors keep provider order",
			crew: []*CrewMember{
				{Name: "Lana Wachowski", Job: "Director"},
				{Name: "Joel Silver", Job: "Producer"},
				{Name: "Lilly Wachowski", Job: "Director"},
			},
			want: "Lana Wachowski, Lilly Wachowski",
		},
		{"job must match exactly", []*CrewMember{{Name: "A", Job: "Assistant Director"}, {Name: "B", Job: "director"}}, ""},
		{"nil member", []*CrewMember{nil, {Name: "A", Job: "Director"}}, "A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DirectorNames(tt.crew))
		})
	}
}

func TestReleaseYear(t *testing.T) {
	tests := map[string]string{
		"1999-10-15": "1999",
		"2004":       "2004",
		"":           "",
		"199":        "",
		"TBA":        "",
		"19x9-01-01": "",
	}

	for date, want := range tests {
		assert.Equal(t, want, ReleaseYear(date), date)
	}
}

func TestClampPages(t *testing.T) {
	assert.Equal(t, 1, ClampPages(0))
	assert.Equal(t, 1, ClampPages(-10))
	assert.Equal(t, 1, ClampPages(1))
	assert.Equal(t, 250, ClampPages(250))
	assert.Equal(t, 500, ClampPages(500))
	assert.Equal(t, 500, ClampPages(10000))
}
