package course

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// The catalog export encodes day and minute fields as decimal strings
// ({"day": "2", "t1": "600", "t2": "690"}). Plain numbers are accepted too.

type jsonTimePoint struct {
	Day flexInt `json:"day"`
	T1  flexInt `json:"t1"`
	T2  flexInt `json:"t2"`
}

type jsonBlock struct {
	Campus     string          `json:"campus,omitempty"`
	Display    string          `json:"display"`
	Location   string          `json:"location"`
	TimeBlocks []jsonTimePoint `json:"timeblocks"`
	CRN        string          `json:"crn"`
}

type jsonTerm struct {
	Term   string      `json:"term"`
	Blocks []jsonBlock `json:"blocks"`
}

type jsonInstructor struct {
	Name string `json:"name"`
	Term string `json:"term"`
}

type jsonCourse struct {
	CourseCode  string           `json:"course_code"`
	Subject     string           `json:"subject,omitempty"`
	Code        string           `json:"code,omitempty"`
	Title       string           `json:"title"`
	Description *string          `json:"description"`
	Terms       []string         `json:"terms"`
	Instructors []jsonInstructor `json:"instructors"`
	Schedule    []jsonTerm       `json:"schedule"`
}

// flexInt decodes either a JSON number or a numeric string.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	s := strings.Trim(string(data), `"`)
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("parsing %s as integer: %w", data, err)
	}
	*f = flexInt(n)
	return nil
}

func (f flexInt) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.Itoa(int(f)))
}

// MarshalJSON encodes the course in the catalog export format.
func (c Course) MarshalJSON() ([]byte, error) {
	jc := jsonCourse{
		CourseCode: c.Code,
		Title:      c.Title,
		Terms:      c.Terms,
	}
	if c.Description != "" {
		desc := c.Description
		jc.Description = &desc
	}
	for _, in := range c.Instructors {
		jc.Instructors = append(jc.Instructors, jsonInstructor(in))
	}
	for _, ts := range c.Schedule {
		jt := jsonTerm{Term: ts.Term, Blocks: make([]jsonBlock, 0, len(ts.Blocks))}
		for _, b := range ts.Blocks {
			jb := jsonBlock{
				Campus:     b.Campus,
				Display:    b.Label,
				Location:   b.Location,
				CRN:        b.ExternalRef,
				TimeBlocks: make([]jsonTimePoint, 0, len(b.Occurrences)),
			}
			for _, tp := range b.Occurrences {
				jb.TimeBlocks = append(jb.TimeBlocks, jsonTimePoint{
					Day: flexInt(tp.Day),
					T1:  flexInt(tp.StartMinute),
					T2:  flexInt(tp.EndMinute),
				})
			}
			jt.Blocks = append(jt.Blocks, jb)
		}
		jc.Schedule = append(jc.Schedule, jt)
	}
	return json.Marshal(jc)
}

// UnmarshalJSON decodes a course from the catalog export format. Block kinds
// are classified here so grouping never re-parses labels.
func (c *Course) UnmarshalJSON(data []byte) error {
	var jc jsonCourse
	if err := json.Unmarshal(data, &jc); err != nil {
		return err
	}

	code := strings.TrimSpace(jc.CourseCode)
	if code == "" {
		code = strings.TrimSpace(jc.Subject + " " + jc.Code)
	}

	out := Course{
		Code:  code,
		Title: jc.Title,
		Terms: jc.Terms,
	}
	if jc.Description != nil {
		out.Description = *jc.Description
	}
	for _, in := range jc.Instructors {
		out.Instructors = append(out.Instructors, Instructor(in))
	}
	for _, jt := range jc.Schedule {
		ts := TermSchedule{Term: jt.Term, Blocks: make([]MeetingBlock, 0, len(jt.Blocks))}
		for _, jb := range jt.Blocks {
			occ := make([]TimePoint, 0, len(jb.TimeBlocks))
			for _, tb := range jb.TimeBlocks {
				occ = append(occ, TimePoint{
					Day:         int(tb.Day),
					StartMinute: int(tb.T1),
					EndMinute:   int(tb.T2),
				})
			}
			b := NewBlock(jb.Display, jb.Location, jb.CRN, occ...)
			b.Campus = jb.Campus
			ts.Blocks = append(ts.Blocks, b)
		}
		out.Schedule = append(out.Schedule, ts)
	}

	*c = out
	return nil
}
