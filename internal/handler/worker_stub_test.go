package handler

import "context"

type workerStub struct {
	data  map[string]any
	err   error
	calls int

	path      string
	payload   any
	requestID string
}

func (s *workerStub) PostJSON(ctx context.Context, path string, payload any, requestID string) (map[string]any, error) {
	s.calls++
	s.path, s.payload, s.requestID = path, payload, requestID
	if s.err != nil {
		return nil, s.err
	}
	return s.data, nil
}
