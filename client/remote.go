package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"touchtris/pb"
	"touchtris/tetris"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const mirrorBuffer = 4

// Mirror publishes board snapshots to a relay so the session can be watched
// from elsewhere. It never blocks the game loop: snapshots are dropped while
// the stream is busy and failures are only logged.
type Mirror struct {
	Session string

	client  pb.MirrorClient
	logger  *slog.Logger
	sendCh  chan *tetris.Tetris
	doneCh  chan struct{}
	started bool
}

func NewMirror(c pb.MirrorClient, l *slog.Logger) *Mirror {
	return &Mirror{
		Session: uuid.New().String(),
		client:  c,
		logger:  l,
		sendCh:  make(chan *tetris.Tetris, mirrorBuffer),
		doneCh:  make(chan struct{}),
	}
}

func (m *Mirror) Start(ctx context.Context) error {
	stream, err := m.client.Publish(ctx)
	if err != nil {
		return fmt.Errorf("unable to open mirror stream: %w", err)
	}
	m.started = true
	go m.publish(stream)
	m.logger.Info("mirroring session", slog.String("session", m.Session))
	return nil
}

// Send queues t for publishing. t must not be modified afterwards.
func (m *Mirror) Send(t *tetris.Tetris) {
	select {
	case m.sendCh <- t:
	default:
		m.logger.Debug("mirror busy, dropping snapshot")
	}
}

// Close flushes the stream. Send must not be called after Close.
func (m *Mirror) Close() {
	close(m.sendCh)
	if m.started {
		<-m.doneCh
	}
}

func (m *Mirror) publish(stream grpc.ClientStreamingClient[structpb.Struct, emptypb.Empty]) {
	defer close(m.doneCh)
	for t := range m.sendCh {
		msg, err := pb.NewSnapshot(m.Session, t).Proto()
		if err != nil {
			m.logger.Error("unable to encode snapshot", slog.String("error", err.Error()))
			continue
		}
		if err := stream.Send(msg); err != nil {
			if errors.Is(err, io.EOF) {
				// the real status comes with the response.
				_, err = stream.CloseAndRecv()
			}
			m.logStreamError(err)
			for range m.sendCh {
			}
			return
		}
	}
	if _, err := stream.CloseAndRecv(); err != nil {
		m.logStreamError(err)
	}
}

func (m *Mirror) logStreamError(err error) {
	st, ok := status.FromError(err)
	switch {
	case err == nil:
	case ok && st.Code() == codes.Canceled:
		m.logger.Debug("mirror stream closed with Cancel", slog.String("msg", st.Message()))
	default:
		m.logger.Error("mirror stream failed", slog.String("error", err.Error()))
	}
}
