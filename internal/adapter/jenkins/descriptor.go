package jenkins

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"build-notifier/internal/domain/model"
)

// descriptor is the on-disk JSON form of a build handed to `notifier notify --build`.
//
//	{"jobDisplayName":"app","number":5,"result":"FAILURE","timestamp":"12:00",
//	 "url":"/job/app/5/","causes":[{"type":"user","userName":"alice"}]}
type descriptor struct {
	JobDisplayName string            `json:"jobDisplayName"`
	Number         int               `json:"number"`
	Result         model.Result      `json:"result"`
	Timestamp      string            `json:"timestamp"`
	URL            string            `json:"url"`
	Causes         []causeDescriptor `json:"causes"`
}

type causeDescriptor struct {
	Type             string            `json:"type"`
	ShortDescription string            `json:"shortDescription,omitempty"`
	UserName         string            `json:"userName,omitempty"`
	Causes           []causeDescriptor `json:"causes,omitempty"`
}

// DecodeBuild reads a build descriptor document.
func DecodeBuild(r io.Reader) (*model.Build, error) {
	var d descriptor
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("decode build descriptor: %w", err)
	}
	if strings.TrimSpace(d.JobDisplayName) == "" {
		return nil, fmt.Errorf("build descriptor: jobDisplayName is required")
	}

	causes, err := decodeCauses(d.Causes)
	if err != nil {
		return nil, err
	}

	return &model.Build{
		JobDisplayName: d.JobDisplayName,
		Number:         d.Number,
		Result:         d.Result,
		Timestamp:      d.Timestamp,
		URL:            d.URL,
		Causes:         causes,
	}, nil
}

func decodeCauses(in []causeDescriptor) ([]model.Cause, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make([]model.Cause, 0, len(in))
	for _, c := range in {
		switch strings.ToLower(c.Type) {
		case "scm":
			out = append(out, model.SCMTrigger(c.ShortDescription))
		case "user":
			out = append(out, model.UserTrigger(c.UserName))
		case "upstream":
			nested, err := decodeCauses(c.Causes)
			if err != nil {
				return nil, err
			}
			out = append(out, model.UpstreamTrigger(nested...))
		case "", "other":
			out = append(out, model.Cause{Kind: model.CauseUnknown, ShortDescription: c.ShortDescription})
		default:
			return nil, fmt.Errorf("build descriptor: unknown cause type %q", c.Type)
		}
	}
	return out, nil
}
