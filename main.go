package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"github.com/gorilla/websocket"
	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"thermal/calculator"
	"thermal/dump"
	"thermal/model"
	"thermal/server"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

var (
	logLevel string
	logJSON  bool

	configFile string
	outputFile string
	plotDir    string
	profiling  bool

	addr string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "thermal",
		Short: "steady-state 3D heat conduction solver",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLog()
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "log in json format")

	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "solve a case until the error norm drops below epsilon",
		Args:  cobra.NoArgs,
		RunE:  runSolve,
	}
	solveCmd.Flags().StringVarP(&configFile, "config", "c", "case.ini", "case file, .ini or .yaml")
	solveCmd.Flags().StringVarP(&outputFile, "output", "o", "results.json", "result file")
	solveCmd.Flags().StringVar(&plotDir, "plot-dir", "", "write x-slice heat maps of the last snapshot into this directory")
	solveCmd.Flags().BoolVar(&profiling, "profile", false, "write a cpu profile into the working directory")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve solve requests over websocket at /ws",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			upgrader.CheckOrigin = func(r *http.Request) bool {
				return true
			}
			return server.NewServer(addr, upgrader).Serve()
		},
	}
	serveCmd.Flags().StringVar(&addr, "addr", ":9000", "listen address")

	plotCmd := &cobra.Command{
		Use:   "plot [results.json]",
		Short: "print the summary and error decay of a result file",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlot,
	}
	plotCmd.Flags().StringVar(&plotDir, "plot-dir", "", "also write x-slice heat maps into this directory")

	rootCmd.AddCommand(solveCmd, serveCmd, plotCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLog() error {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	log.SetLevel(level)
	if logJSON {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	if profiling {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	}

	setup, err := calculator.LoadSetup(configFile)
	if err != nil {
		return err
	}
	c, err := calculator.NewCalculatorFromSetup(setup)
	if err != nil {
		return err
	}
	defer c.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	res, err := c.Run(ctx)
	if res == nil {
		return err
	}
	if err != nil && !errors.Is(err, calculator.ErrMaxSweeps) && !errors.Is(err, context.Canceled) {
		return err
	}
	if err != nil {
		log.Warn(err)
	}

	if err = dump.WriteJSON(outputFile, res); err != nil {
		return err
	}
	return report(res)
}

func runPlot(cmd *cobra.Command, args []string) error {
	res, err := dump.ReadJSON(args[0])
	if err != nil {
		return err
	}
	return report(res)
}

func report(res *model.SimulationResult) error {
	summary, err := dump.Summarize(res)
	if err != nil {
		return err
	}
	fmt.Print(summary)
	fmt.Println(dump.ErrorChart(res, 10, 80))
	if plotDir != "" {
		if _, err = dump.WriteHeatMaps(res, plotDir); err != nil {
			return err
		}
	}
	return nil
}
