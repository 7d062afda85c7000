package main

import (
	"flag"
	"log/slog"
	"net"
	"os"

	"touchtris/pb"
	"touchtris/server"

	"google.golang.org/grpc"
)

func main() {
	addr := flag.String("addr", ":9000", "address to listen on")
	debug := flag.Bool("debug", false, "enable debug logs")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	lis, err := net.Listen("tcp", *addr)
	if err != nil {
		logger.Error("failed to listen", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer lis.Close()
	s := grpc.NewServer()
	defer s.Stop()
	pb.RegisterMirrorServer(s, server.New(logger))

	logger.Info("starting mirror relay", slog.String("addr", lis.Addr().String()))
	if err := s.Serve(lis); err != nil {
		logger.Error("failed to serve", slog.String("error", err.Error()))
	}
}
