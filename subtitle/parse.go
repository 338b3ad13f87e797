package subtitle

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrMalformed is returned for timing lines that cannot be parsed.
	ErrMalformed = errors.New("malformed cue file")
	// ErrNoCues is returned when a file parses cleanly but holds no cues.
	ErrNoCues = errors.New("no cues found")
	// ErrUnsupported is returned for extensions other than .srt and .vtt.
	ErrUnsupported = errors.New("unsupported cue file format")
)

// Timing lines look like "00:00:01,600 --> 00:00:04,200" (SRT) or
// "00:01.600 --> 00:04.200 align:start" (WebVTT, hours optional).
var timingRegex = regexp.MustCompile(`^((?:\d+:)?\d{1,2}:\d{1,2}[,.]\d{1,3})\s+-->\s+((?:\d+:)?\d{1,2}:\d{1,2}[,.]\d{1,3})`)

var tagRegex = regexp.MustCompile(`<[^>]*>`)

// Extensions lists the cue file extensions ParseFile accepts.
var Extensions = []string{".srt", ".vtt"}

// Supported reports whether path has a cue file extension.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// ParseFile reads an SRT or WebVTT file and returns its cues in file order.
// encoding is passed to Decode.
func ParseFile(path, encoding string) ([]Cue, error) {
	if !Supported(path) {
		return nil, fmt.Errorf("%w: %s (want %s)", ErrUnsupported, filepath.Base(path), strings.Join(Extensions, " or "))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text, err := Decode(data, encoding)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformed, filepath.Base(path), err)
	}
	cues, err := Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return cues, nil
}

// Parse extracts cues from decoded SRT or WebVTT text. Both formats are
// blocks of an optional identifier, one timing line and text lines,
// separated by blank lines, so one scanner handles them.
func Parse(text string) ([]Cue, error) {
	var cues []Cue
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if !strings.Contains(line, "-->") {
			continue
		}

		matches := timingRegex.FindStringSubmatch(line)
		if matches == nil {
			return nil, fmt.Errorf("%w: line %d: bad timing %q", ErrMalformed, lineNum, line)
		}
		start, err := ParseTime(matches[1])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformed, lineNum, err)
		}
		end, err := ParseTime(matches[2])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformed, lineNum, err)
		}
		if end < start {
			return nil, fmt.Errorf("%w: line %d: cue ends before it starts", ErrMalformed, lineNum)
		}

		var textLines []string
		for scanner.Scan() {
			lineNum++
			textLine := strings.TrimSpace(scanner.Text())
			if textLine == "" {
				break
			}
			if clean := tagRegex.ReplaceAllString(textLine, ""); clean != "" {
				textLines = append(textLines, clean)
			}
		}

		cues = append(cues, Cue{
			Index: len(cues) + 1,
			Start: start,
			End:   end,
			Text:  strings.Join(textLines, " "),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(cues) == 0 {
		return nil, ErrNoCues
	}
	return cues, nil
}

// ParseTime parses "HH:MM:SS,mmm", "HH:MM:SS.mmm" or "MM:SS.mmm".
// Fractions shorter than three digits are scaled, so "1.5" is 1500ms.
func ParseTime(timeStr string) (time.Duration, error) {
	timeStr = strings.Replace(strings.TrimSpace(timeStr), ",", ".", 1)
	parts := strings.Split(timeStr, ":")
	if len(parts) == 2 {
		parts = append([]string{"0"}, parts...)
	}
	if len(parts) != 3 {
		return 0, fmt.Errorf("invalid time format: %s", timeStr)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hours in %s: %v", timeStr, err)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minutes in %s: %v", timeStr, err)
	}
	secondsParts := strings.SplitN(parts[2], ".", 2)
	seconds, err := strconv.Atoi(secondsParts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid seconds in %s: %v", timeStr, err)
	}
	if hours < 0 || minutes < 0 || minutes >= 60 || seconds < 0 || seconds >= 60 {
		return 0, fmt.Errorf("invalid time values: %s", timeStr)
	}

	milliseconds := 0
	if len(secondsParts) > 1 {
		// Pad or truncate to 3 digits
		msStr := secondsParts[1]
		if len(msStr) > 3 {
			msStr = msStr[:3]
		}
		for len(msStr) < 3 {
			msStr += "0"
		}
		milliseconds, err = strconv.Atoi(msStr)
		if err != nil {
			return 0, fmt.Errorf("invalid milliseconds in %s: %v", timeStr, err)
		}
	}

	return time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(milliseconds)*time.Millisecond, nil
}
