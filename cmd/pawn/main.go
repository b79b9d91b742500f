package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/qwertyexchange/cryptopawn/internal/config"
	"github.com/qwertyexchange/cryptopawn/internal/fund"
	"github.com/qwertyexchange/cryptopawn/internal/services/wasmrequest"
	"github.com/qwertyexchange/cryptopawn/internal/store"
	"github.com/qwertyexchange/cryptopawn/pkg/pawn"
)

const usdtDenom = "peggy0xdAC17F958D2ee523a2206206994597C13D831ec7"

func main() {
	env := flag.String("env", "", "path to .env file")

	action := flag.String("action", "fetch", "fetch | create | accept | reject | close")

	id := flag.String("id", "", "proposition id (accept, reject, close)")

	offerType := flag.String("type", "ask", "offer direction: ask | bid (create)")

	assets := flag.String("assets", "", "assets leg as amount:denom (create)")

	deposit := flag.String("deposit", "", "deposit leg as amount:denom (create)")

	premium := flag.String("premium", "", "premium leg as amount:denom (create)")

	period := flag.Int64("period", 60, "loan period in minutes (create)")

	expiry := flag.Int64("expiry", 7, "offer expiry in days from now (create)")

	tokens := flag.String("tokens", "", "path to a denom->decimals json file")

	flag.Parse()

	ctx := context.Background()

	conf, err := config.New(ctx, *env)
	if err != nil {
		log.Fatal(err)
	}

	if conf.WalletAddress == "" {
		log.Fatal("WALLET_ADDRESS is required")
	}

	registry := fund.NewRegistry("inj", 18)
	registry.Register(usdtDenom, 6)

	if *tokens != "" {
		err = registerTokens(registry, *tokens)
		if err != nil {
			log.Fatal(err)
		}
	}

	wasm := wasmrequest.NewWasmService(conf.LCDURL, conf.ContractAddress)
	gateway := wasmrequest.NewGateway(conf.ContractAddress, wasmrequest.NewSignerBroadcaster(conf.SignerURL))

	s := store.New(conf.WalletAddress, registry, wasm, gateway)

	switch *action {
	case "fetch":
		err := s.FetchPropositions(ctx)
		if err != nil {
			log.Fatal(err)
		}

		printOffers(s.Offers())
	case "create":
		draft := pawn.Draft{
			PropositionType: pawn.PropositionType(*offerType),
			Assets:          parseCoin(*assets),
			Deposit:         parseCoin(*deposit),
			Premium:         parseCoin(*premium),
			PeriodMinutes:   *period,
			ExpiryDays:      *expiry,
		}

		hash, err := s.CreateProposition(ctx, draft)
		if err != nil {
			log.Fatal(err)
		}

		log.Default().Println("submitted: ", hash)
	case "accept", "reject", "close":
		if *id == "" {
			log.Fatal("-id is required")
		}

		// the cache is the source of the offer's funds and roles
		err := s.FetchPropositions(ctx)
		if err != nil {
			log.Fatal(err)
		}

		var hash string
		switch *action {
		case "accept":
			hash, err = s.AcceptProposition(ctx, *id)
		case "reject":
			hash, err = s.RejectProposition(ctx, *id)
		case "close":
			hash, err = s.CloseProposition(ctx, *id)
		}
		if err != nil {
			log.Fatal(err)
		}

		log.Default().Println("submitted: ", hash)
	default:
		log.Fatal("unsupported action (must be one of: fetch, create, accept, reject, close)")
	}
}

func registerTokens(registry *fund.Registry, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	decimals := map[string]int32{}
	err = json.Unmarshal(b, &decimals)
	if err != nil {
		return err
	}

	for denom, d := range decimals {
		registry.Register(denom, d)
	}

	return nil
}

func parseCoin(leg string) pawn.Coin {
	amount, denom, found := strings.Cut(leg, ":")
	if !found {
		log.Fatalf("invalid coin %q, expected amount:denom", leg)
	}

	return pawn.Coin{Denom: denom, Amount: amount}
}

func printOffers(offers []pawn.Proposition) {
	if len(offers) == 0 {
		fmt.Println("no propositions")
		return
	}

	for _, p := range offers {
		fmt.Printf("#%s\t%s\t%s\tassets %s %s\tdeposit %s %s\tpremium %s %s\towner %s\n",
			p.ID, p.PropositionType, p.State,
			p.Assets.Amount, p.Assets.Denom,
			p.Deposit.Amount, p.Deposit.Denom,
			p.Premium.Amount, p.Premium.Denom,
			p.Owner)
	}
}
