// cmd/gotrig/main.go — CLI and HTTP tool server for gotrig
//
// Exposes the exact circular-function engine over a tool-call API.
//
// Usage:
//   gotrig serve --port 8080
//   gotrig call '{"tool":"eval","params":{"fn":"sin","args":[...]}}'
//   gotrig spec
//
// Tool call endpoint: POST /tool
// Schema endpoint:    GET  /schema
// Health endpoint:    GET  /health
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"runtime/debug"
	"time"

	gotrig "github.com/njchilds90/gotrig"
	"github.com/spf13/cobra"
)

var (
	port       int
	configFile string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gotrig",
		Short: "exact symbolic evaluation of the circular and inverse circular functions",
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "run the HTTP tool server",
		RunE:  runServe,
	}
	serveCmd.Flags().IntVar(&port, "port", DefaultPort, "port to listen on")
	serveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")

	callCmd := &cobra.Command{
		Use:   "call [request-json]",
		Short: "execute a single tool call; reads stdin when no argument is given",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runCall,
	}

	specCmd := &cobra.Command{
		Use:   "spec",
		Short: "print the tool schema",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(gotrig.ToolSpec())
		},
	}

	rootCmd.AddCommand(serveCmd, callCmd, specCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := DefaultConfig()
	if configFile != "" {
		loaded, err := LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = port
	}

	mux := http.NewServeMux()

	// POST /tool — handle a tool call
	mux.HandleFunc("/tool", func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic in /tool: %v\n%s", rec, string(debug.Stack()))
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()

		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, int64(cfg.MaxBodyBytes))
		defer r.Body.Close()

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req gotrig.ToolRequest
		if err := dec.Decode(&req); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
			return
		}
		// Ensure there's no trailing junk.
		if dec.More() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid JSON: trailing data"})
			return
		}

		resp := gotrig.HandleToolCall(req)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	})

	// GET /schema — return tool schema for client registration
	mux.HandleFunc("/schema", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, gotrig.ToolSpec())
	})

	// GET /health — liveness check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("gotrig tool server listening on %s", addr)
	log.Printf("  POST /tool   — execute a tool call")
	log.Printf("  GET  /schema — tool schema for client registration")
	log.Printf("  GET  /health — health check")

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: time.Duration(cfg.ReadHeaderTimeout) * time.Second,
		ReadTimeout:       time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(cfg.WriteTimeout) * time.Second,
		IdleTimeout:       time.Duration(cfg.IdleTimeout) * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func runCall(cmd *cobra.Command, args []string) error {
	var raw []byte
	if len(args) == 1 {
		raw = []byte(args[0])
	} else {
		var err error
		raw, err = io.ReadAll(os.Stdin)
		if err != nil {
			return err
		}
	}

	var req gotrig.ToolRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}

	resp := gotrig.HandleToolCall(req)
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}
