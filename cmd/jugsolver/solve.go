package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/jonwraymond/jugsolver/auth"
	"github.com/jonwraymond/jugsolver/config"
	"github.com/jonwraymond/jugsolver/puzzle"
	"github.com/jonwraymond/jugsolver/server"
	"github.com/jonwraymond/jugsolver/service"
)

// runSolve prints what POST /solve would return for the same input.
func runSolve(ctx context.Context, out io.Writer, x, y, target int) error {
	svc, err := service.New()
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	sol, err := svc.Solve(ctx, puzzle.ProblemKey{X: x, Y: y, Target: target})
	if err != nil {
		if encErr := enc.Encode(server.ErrorResponse{Error: service.PublicMessage(err)}); encErr != nil {
			return encErr
		}
		return fmt.Errorf("%w: %s", errReported, service.Classify(err))
	}
	return enc.Encode(server.SolveResponse{Solution: sol})
}

// runToken prints a bearer token accepted by the jwt and any auth modes.
func runToken(ctx context.Context, out io.Writer, subject string, ttl time.Duration) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	token, err := auth.SignToken([]byte(cfg.Auth.JWTSecret), auth.TokenSpec{
		Subject:  subject,
		Issuer:   cfg.Auth.JWTIssuer,
		Audience: cfg.Auth.JWTAudience,
		TTL:      ttl,
	}, time.Now())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, token)
	return err
}
