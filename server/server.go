// Package server implements the mirror relay: devices publish snapshots of
// their session and any number of watchers follow them. It carries no input
// back to the device.
package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"sync"

	"touchtris/pb"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// watcherBuffer is how many snapshots a slow watcher may fall behind before
// snapshots are skipped for it.
const watcherBuffer = 10

type session struct {
	last     *structpb.Struct
	watchers map[chan *structpb.Struct]struct{}
}

func (s *session) close() {
	for ch := range s.watchers {
		close(ch)
	}
}

type mirrorServer struct {
	pb.UnimplementedMirrorServer
	logger   *slog.Logger
	sessions map[string]*session
	mu       sync.Mutex
}

func New(l *slog.Logger) pb.MirrorServer {
	return &mirrorServer{logger: l, sessions: make(map[string]*session)}
}

func (m *mirrorServer) Publish(stream grpc.ClientStreamingServer[structpb.Struct, emptypb.Empty]) error {
	var id string
	defer func() {
		if id == "" {
			return
		}
		m.mu.Lock()
		m.sessions[id].close()
		delete(m.sessions, id)
		m.mu.Unlock()
		m.logger.Info("session ended", slog.String("session", id))
	}()

	for {
		msg, err := stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return stream.SendAndClose(&emptypb.Empty{})
			}
			return err
		}
		snap, err := pb.SnapshotFromProto(msg)
		if err != nil {
			return status.Error(codes.InvalidArgument, err.Error())
		}
		if _, err := uuid.Parse(snap.Session); err != nil {
			return status.Errorf(codes.InvalidArgument, "invalid session id %q", snap.Session)
		}

		switch id {
		case "":
			if err := m.open(snap.Session); err != nil {
				return err
			}
			id = snap.Session
			m.logger.Info("session started", slog.String("session", id))
		case snap.Session:
		default:
			return status.Errorf(codes.InvalidArgument, "stream publishes %q, got %q", id, snap.Session)
		}
		m.broadcast(id, msg)
	}
}

func (m *mirrorServer) open(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; ok {
		return status.Errorf(codes.AlreadyExists, "session %q is already published", id)
	}
	m.sessions[id] = &session{watchers: make(map[chan *structpb.Struct]struct{})}
	return nil
}

func (m *mirrorServer) broadcast(id string, msg *structpb.Struct) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.sessions[id]
	s.last = msg
	for ch := range s.watchers {
		select {
		case ch <- msg:
		default:
			m.logger.Debug("watcher behind, skipping snapshot", slog.String("session", id))
		}
	}
}

func (m *mirrorServer) Watch(req *wrapperspb.StringValue, stream grpc.ServerStreamingServer[structpb.Struct]) error {
	id := req.GetValue()
	if _, err := uuid.Parse(id); err != nil {
		return status.Errorf(codes.InvalidArgument, "invalid session id %q", id)
	}

	ch := make(chan *structpb.Struct, watcherBuffer)
	m.mu.Lock()
	s, ok := m.sessions[id]
	if !ok {
		m.mu.Unlock()
		return status.Errorf(codes.NotFound, "session %q not found", id)
	}
	s.watchers[ch] = struct{}{}
	last := s.last
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		// the channel is closed by the publisher when the session ends.
		if s, ok := m.sessions[id]; ok {
			delete(s.watchers, ch)
		}
		m.mu.Unlock()
	}()

	if last != nil {
		if err := stream.Send(last); err != nil {
			return err
		}
	}
	ctx := stream.Context()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			if err := stream.Send(msg); err != nil {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (m *mirrorServer) Sessions(_ context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	m.mu.Lock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	m.mu.Unlock()
	slices.Sort(ids)

	values := make([]*structpb.Value, len(ids))
	for i, id := range ids {
		values[i] = structpb.NewStringValue(id)
	}
	return &structpb.ListValue{Values: values}, nil
}
