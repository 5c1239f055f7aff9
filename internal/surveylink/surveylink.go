// Package surveylink builds and recognises the links given to survey respondents (the content of survey QR codes).
package surveylink

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	fillPath   = "/survey/fill/"
	resumePath = "/survey/resume"
)

// FillURL returns the address where respondents answer survey surveyID, e.g. https://surveys.example.org/survey/fill/12
func FillURL(base string, surveyID int) (string, error) {
	u, err := parseBase(base)
	if err != nil {
		return "", err
	}
	if surveyID <= 0 {
		return "", fmt.Errorf("invalid survey id %d", surveyID)
	}
	return u.JoinPath(fillPath, strconv.Itoa(surveyID)).String(), nil
}

// ResumeURL returns the address where a respondent continues a partly completed survey
func ResumeURL(base string) (string, error) {
	u, err := parseBase(base)
	if err != nil {
		return "", err
	}
	return u.JoinPath(resumePath).String(), nil
}

// IsFillURL reports whether raw parses as a url whose path contains both a "survey" and a "fill" segment
func IsFillURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}

	var survey, fill bool
	for _, seg := range strings.Split(u.Path, "/") {
		switch seg {
		case "survey":
			survey = true
		case "fill":
			fill = true
		}
	}
	return survey && fill
}

// SurveyID extracts the survey id from a fill url
func SurveyID(raw string) (int, bool) {
	u, err := url.Parse(raw)
	if err != nil {
		return 0, false
	}
	rest, found := strings.CutPrefix(u.Path, fillPath)
	if !found {
		// links generated under a base path, e.g. /console/survey/fill/12
		i := strings.Index(u.Path, fillPath)
		if i < 0 {
			return 0, false
		}
		rest = u.Path[i+len(fillPath):]
	}
	id, err := strconv.Atoi(strings.TrimSuffix(rest, "/"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func parseBase(base string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSuffix(base, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", base, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q must use http or https", base)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("base url %q has no host", base)
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
