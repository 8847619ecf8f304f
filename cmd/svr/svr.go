// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"flag"
	"fmt"

	"github.com/zintix-labs/seqsense"
	"github.com/zintix-labs/seqsense/sdk/core"
	"github.com/zintix-labs/seqsense/server"
	"github.com/zintix-labs/seqsense/server/logger"
	"github.com/zintix-labs/seqsense/server/svrcfg"
)

// This command is the default server entrypoint for the seqsense repo.
// For production deployments, run ModeProd and tune -max-sample to your budget.
func main() {
	cfg, err := loadConfigFromFlags()
	if err != nil {
		fmt.Println(err)
		return
	}
	server.Run(cfg)
}

type config struct {
	LogMode       string
	MaxSampleSize int
}

func loadConfigFromFlags() (*svrcfg.SvrCfg, error) {
	cfg := new(config)
	flag.StringVar(&cfg.LogMode, "log-mode", "ModeDev", "log mode: ModeDev|ModeProd|ModeSilence")
	flag.IntVar(&cfg.MaxSampleSize, "max-sample", 1_000_000, "max Monte-Carlo sample size per request")

	flag.Parse()

	log, _ := logger.NewAsync(4096, cfg.norm())

	lab, err := seqsense.New(core.Default())
	if err != nil {
		return nil, err
	}
	sCfg := &svrcfg.SvrCfg{
		Log:           log,
		MaxSampleSize: cfg.MaxSampleSize,
		Lab:           lab,
	}
	return sCfg, nil
}

func (cfg *config) norm() logger.LogMode {
	switch cfg.LogMode {
	case "ModeDev":
		return logger.ModeDev
	case "ModeProd":
		return logger.ModeProd
	case "ModeSilence":
		return logger.ModeSilence
	default:
		return logger.ModeDev
	}
}
