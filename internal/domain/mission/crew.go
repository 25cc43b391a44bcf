package mission

import (
	"sort"

	"github.com/andrescamacho/redcycle-go/internal/domain/processing"
)

// CrewID identifies one astronaut.
type CrewID string

// Roster is the fixed crew of the habitat.
var Roster = []CrewID{"crew1", "crew2", "crew3", "crew4"}

// IsRosterMember reports whether id belongs to the habitat crew.
func IsRosterMember(id CrewID) bool {
	for _, member := range Roster {
		if member == id {
			return true
		}
	}
	return false
}

// Assignment is one crew member's current post. Module is empty when the
// crew member is unassigned.
type Assignment struct {
	Crew   CrewID
	Module processing.ModuleID
}

// Assigned reports whether the crew member is posted to a module.
func (a Assignment) Assigned() bool { return a.Module != "" }

// CrewAssignment maps crew members to at most one module each.
// Capacity and availability policy belongs to callers.
type CrewAssignment struct {
	posts map[CrewID]processing.ModuleID
}

// NewCrewAssignment creates an empty assignment table.
func NewCrewAssignment() *CrewAssignment {
	return &CrewAssignment{posts: make(map[CrewID]processing.ModuleID)}
}

// Assign posts a crew member to module, or unassigns them when module is
// empty. Last write wins.
func (c *CrewAssignment) Assign(crew CrewID, module processing.ModuleID) {
	c.posts[crew] = module
}

// Toggle unassigns a crew member already posted to module, otherwise posts
// them there. It returns the resulting post.
func (c *CrewAssignment) Toggle(crew CrewID, module processing.ModuleID) processing.ModuleID {
	if c.posts[crew] == module {
		c.posts[crew] = ""
	} else {
		c.posts[crew] = module
	}
	return c.posts[crew]
}

// ModuleOf returns the module a crew member is posted to ("" if none).
func (c *CrewAssignment) ModuleOf(crew CrewID) processing.ModuleID {
	return c.posts[crew]
}

// CountAt returns how many crew members are posted to module.
func (c *CrewAssignment) CountAt(module processing.ModuleID) int {
	if module == "" {
		return 0
	}
	count := 0
	for _, post := range c.posts {
		if post == module {
			count++
		}
	}
	return count
}

// Assignments returns every recorded entry sorted by crew id, including
// explicit unassignments.
func (c *CrewAssignment) Assignments() []Assignment {
	out := make([]Assignment, 0, len(c.posts))
	for crew, module := range c.posts {
		out = append(out, Assignment{Crew: crew, Module: module})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Crew < out[b].Crew })
	return out
}

// Clear removes every entry.
func (c *CrewAssignment) Clear() {
	c.posts = make(map[CrewID]processing.ModuleID)
}
