// Package seed loads bring-up fixtures and replays them against a running
// registry over gRPC.
package seed

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/louisbranch/registrar/internal/services/registry/domain"
	"gopkg.in/yaml.v3"
)

//go:embed fixtures/bringup.yaml
var bringupFixture []byte

// Fixture is a declarative description of registry data to create.
type Fixture struct {
	Name      string            `yaml:"name"`
	Users     []UserFixture     `yaml:"users"`
	Classroom ClassroomFixture  `yaml:"classroom"`
	Courses   []CourseFixture   `yaml:"courses"`
	Schedules []ScheduleFixture `yaml:"schedules"`
}

// UserFixture registers a principal with a role name (student, professor
// or admin).
type UserFixture struct {
	Principal string `yaml:"principal"`
	Role      string `yaml:"role"`
}

// ClassroomFixture is the classroom every seeded schedule is placed in.
type ClassroomFixture struct {
	Name     string `yaml:"name"`
	Location string `yaml:"location"`
	Capacity uint32 `yaml:"capacity"`
}

type CourseFixture struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Credits     uint32 `yaml:"credits"`
}

// ScheduleFixture references its course by position in Fixture.Courses.
type ScheduleFixture struct {
	Course int `yaml:"course"`
	Day    int `yaml:"day"`
	Start  int `yaml:"start"`
	End    int `yaml:"end"`
}

// DefaultFixture returns the embedded bring-up fixture.
func DefaultFixture() (Fixture, error) {
	return ParseFixture(bringupFixture)
}

// LoadFixture reads and parses a fixture file.
func LoadFixture(path string) (Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("read fixture %s: %w", path, err)
	}
	fx, err := ParseFixture(data)
	if err != nil {
		return Fixture{}, fmt.Errorf("fixture %s: %w", path, err)
	}
	return fx, nil
}

// ParseFixture decodes YAML fixture data, rejecting unknown fields.
func ParseFixture(data []byte) (Fixture, error) {
	var fx Fixture
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fx); err != nil {
		return Fixture{}, fmt.Errorf("decode fixture: %w", err)
	}
	if err := fx.Validate(); err != nil {
		return Fixture{}, err
	}
	return fx, nil
}

// Validate checks fixture references before anything is sent to a server.
func (f Fixture) Validate() error {
	if len(f.Schedules) > 0 && strings.TrimSpace(f.Classroom.Name) == "" {
		return errors.New("schedules require a classroom")
	}
	for i, u := range f.Users {
		if strings.TrimSpace(u.Principal) == "" {
			return fmt.Errorf("user %d: principal is required", i)
		}
		if _, ok := domain.ParseRole(u.Role); !ok {
			return fmt.Errorf("user %d: unknown role %q", i, u.Role)
		}
	}
	for i, c := range f.Courses {
		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("course %d: name is required", i)
		}
	}
	for i, s := range f.Schedules {
		if s.Course < 0 || s.Course >= len(f.Courses) {
			return fmt.Errorf("schedule %d: course %d out of range", i, s.Course)
		}
	}
	return nil
}
