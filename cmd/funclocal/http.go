// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func startHTTPServer(ipport string, router http.Handler, boundFunctions int) {
	srv := &http.Server{
		Addr:    ipport,
		Handler: router,
	}

	g, gctx := errgroup.WithContext(context.Background())

	g.Go(func() error {
		log.Infof("Listening on %s, %d function(s) bound", ipport, boundFunctions)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
		select {
		case sig := <-sigs:
			log.Infof("Received %s, shutting down", sig)
		case <-gctx.Done():
			return nil
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Panic(err)
	}
}
