package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"trendscout/internal/analytics"
	"trendscout/internal/api"
	"trendscout/internal/cmdlog"
	"trendscout/internal/content"
	"trendscout/internal/jobs"
	"trendscout/internal/recommend"
	"trendscout/internal/theme"
	"trendscout/internal/transcript"
)

func cmdSearch(args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	cfgPath := fs.String("config", defaultConfigPath, "config path")
	keyword := fs.String("keyword", "", "keyword (TikTok) or hashtag (Instagram)")
	platform := fs.String("platform", "tiktok", "tiktok or instagram")
	maxResults := fs.Int("max", 0, "max videos to fetch (default from config)")
	days := fs.Int("days", 0, "only videos from the last N days (default from config)")
	sortBy := fs.String("sort", "", "views, comments, shares, engagement_rate or trend_score")
	minViews := fs.Int("min-views", -1, "minimum views (default from config; 0 disables)")
	minInteractions := fs.Int("min-interactions", -1, "minimum likes+comments+shares (default from config; 0 disables)")
	show := fs.Int("show", 20, "rows to print")
	asJSON := fs.Bool("json", false, "print JSON")
	_ = fs.Parse(args)
	if strings.TrimSpace(*keyword) == "" && fs.NArg() > 0 {
		*keyword = strings.Join(fs.Args(), " ")
	}
	e, cancel, err := setup(*cfgPath)
	if err != nil {
		return err
	}
	defer cancel()
	p := jobs.SearchParams{
		Keyword:         *keyword,
		MaxResults:      *maxResults,
		DaysAgo:         *days,
		SortBy:          *sortBy,
		MinViews:        *minViews,
		MinInteractions: *minInteractions,
	}
	if p.MinViews < 0 {
		p.MinViews = e.cfg.Search.MinViews
	}
	if p.MinInteractions < 0 {
		p.MinInteractions = e.cfg.Search.MinInteractions
	}
	return cmdlog.Run("search", func(runID string) error {
		db, err := e.openDB()
		if err != nil {
			return err
		}
		defer db.Close()
		if *platform == jobs.PlatformInstagram {
			posts, err := jobs.RunInstagramSearch(e.ctx, db, e.instagram(), e.cfg, p, runID)
			if err != nil {
				return err
			}
			if *asJSON {
				return printJSON(posts)
			}
			fmt.Println(theme.Title(fmt.Sprintf("#%s: %d posts", strings.TrimPrefix(*keyword, "#"), len(posts))))
			for i, post := range posts {
				if i >= *show {
					break
				}
				fmt.Printf("%2d. @%-20s %6.2f%%  %s\n", i+1, post.OwnerUsername, post.EngagementRate, post.PostURL)
			}
			return nil
		}
		res, err := jobs.RunKeywordSearch(e.ctx, db, e.tiktok(), e.cfg, p, runID)
		if err != nil {
			return err
		}
		if *asJSON {
			return printJSON(res)
		}
		fmt.Println(theme.Title(fmt.Sprintf("%q: %d of %d videos kept", res.Keyword, len(res.Videos), res.Fetched)))
		fmt.Println(theme.VideosTable(res.Videos, *show))
		return nil
	})
}

func cmdCreators(args []string) error {
	fs := flag.NewFlagSet("creators", flag.ExitOnError)
	cfgPath := fs.String("config", defaultConfigPath, "config path")
	keyword := fs.String("keyword", "", "only videos found for this keyword (default all)")
	days := fs.Int("days", 0, "only videos from the last N days (default from config)")
	minEng := fs.Float64("micro-min-engagement", analytics.DefaultMicroMinEngagement, "micro-influencer minimum engagement %")
	maxViews := fs.Float64("micro-max-views", analytics.DefaultMicroMaxAvgViews, "micro-influencer maximum average views")
	asJSON := fs.Bool("json", false, "print JSON")
	_ = fs.Parse(args)
	e, cancel, err := setup(*cfgPath)
	if err != nil {
		return err
	}
	defer cancel()
	if *days <= 0 {
		*days = e.cfg.Search.DaysAgo
	}
	return cmdlog.Run("creators", func(string) error {
		db, err := e.openDB()
		if err != nil {
			return err
		}
		defer db.Close()
		posts, err := db.TikTokPosts(e.ctx, *keyword, *days, 1000)
		if err != nil {
			return err
		}
		creators := analytics.AggregateCreators(posts)
		micro := analytics.FindMicroInfluencers(creators, *minEng, *maxViews)
		if *asJSON {
			return printJSON(map[string]any{"creators": creators, "micro_influencers": micro})
		}
		if len(creators) == 0 {
			fmt.Println(theme.Muted("No stored videos; run `trendscout search` first."))
			return nil
		}
		fmt.Println(theme.Title(fmt.Sprintf("%d creators from %d videos", len(creators), len(posts))))
		fmt.Println(theme.CreatorsTable(creators))
		if len(micro) > 0 {
			fmt.Println(theme.Title("Micro-influencers"))
			fmt.Println(theme.CreatorsTable(micro))
		}
		return nil
	})
}

func cmdDeepDive(args []string) error {
	fs := flag.NewFlagSet("deepdive", flag.ExitOnError)
	cfgPath := fs.String("config", defaultConfigPath, "config path")
	user := fs.String("user", "", "TikTok username")
	maxResults := fs.Int("max", 0, "videos to analyse (default from config)")
	asJSON := fs.Bool("json", false, "print JSON")
	_ = fs.Parse(args)
	e, cancel, err := setup(*cfgPath)
	if err != nil {
		return err
	}
	defer cancel()
	if *maxResults <= 0 {
		*maxResults = e.cfg.Search.DeepDiveResults
	}
	return cmdlog.Run("deepdive", func(string) error {
		username := strings.TrimPrefix(strings.TrimSpace(*user), "@")
		videos, err := e.tiktok().SearchByUsername(e.ctx, username, *maxResults)
		if err != nil {
			return err
		}
		summary, ok := analytics.DeepDive(username, videos)
		if !ok {
			return fmt.Errorf("no videos found for @%s", username)
		}
		if *asJSON {
			return printJSON(summary)
		}
		fmt.Println(theme.DeepDiveReport(summary))
		return nil
	})
}

func cmdSimilar(args []string) error {
	fs := flag.NewFlagSet("similar", flag.ExitOnError)
	cfgPath := fs.String("config", defaultConfigPath, "config path")
	user := fs.String("user", "", "seed Instagram username")
	maxResults := fs.Int("max", 0, "accounts to return (default from config)")
	perTag := fs.Int("per-tag", 0, "posts scanned per hashtag (default from config)")
	asJSON := fs.Bool("json", false, "print JSON")
	_ = fs.Parse(args)
	if *user == "" && fs.NArg() > 0 {
		*user = fs.Arg(0)
	}
	e, cancel, err := setup(*cfgPath)
	if err != nil {
		return err
	}
	defer cancel()
	opts := recommend.Options{MaxResults: *maxResults, LimitPerTag: *perTag}
	if opts.MaxResults <= 0 {
		opts.MaxResults = e.cfg.Similar.MaxResults
	}
	if opts.LimitPerTag <= 0 {
		opts.LimitPerTag = e.cfg.Similar.LimitPerTag
	}
	return cmdlog.Run("similar", func(string) error {
		if strings.TrimSpace(*user) == "" {
			return errors.New("similar: -user is required")
		}
		res, err := recommend.FindSimilar(e.ctx, e.instagram(), *user, opts)
		if err != nil {
			return err
		}
		if *asJSON {
			return printJSON(res)
		}
		fmt.Println(theme.Title(fmt.Sprintf("Accounts like @%s (%d hashtags, %d followers)", res.Seed.Username, len(res.Seed.Hashtags), res.Seed.Followers)))
		if len(res.Similar) == 0 {
			fmt.Println(theme.Muted("No candidates found."))
			return nil
		}
		fmt.Println(theme.SimilarTable(res.Similar))
		fmt.Println(theme.Muted("* listed by Instagram as related"))
		return nil
	})
}

func cmdDiscover(args []string) error {
	fs := flag.NewFlagSet("discover", flag.ExitOnError)
	cfgPath := fs.String("config", defaultConfigPath, "config path")
	country := fs.String("country", "", "ISO country code (default from config)")
	asJSON := fs.Bool("json", false, "print JSON")
	_ = fs.Parse(args)
	e, cancel, err := setup(*cfgPath)
	if err != nil {
		return err
	}
	defer cancel()
	if *country == "" {
		*country = e.cfg.Discovery.Country
	}
	return cmdlog.Run("discover", func(string) error {
		d, closeCache, err := e.discoverer()
		if err != nil {
			return err
		}
		defer closeCache()
		kws, err := d.Discover(e.ctx, *country)
		if err != nil {
			return err
		}
		if *asJSON {
			return printJSON(kws)
		}
		fmt.Println(theme.Title("Trending keywords, " + strings.ToUpper(*country)))
		fmt.Print(theme.KeywordList(kws))
		return nil
	})
}

func cmdTranscript(args []string) error {
	fs := flag.NewFlagSet("transcript", flag.ExitOnError)
	cfgPath := fs.String("config", defaultConfigPath, "config path")
	videoURL := fs.String("url", "", "video page URL")
	downloadURL := fs.String("download-url", "", "direct media URL (preferred)")
	_ = fs.Parse(args)
	e, cancel, err := setup(*cfgPath)
	if err != nil {
		return err
	}
	defer cancel()
	return cmdlog.Run("transcript", func(string) error {
		text, err := extract(e, *videoURL, *downloadURL)
		if err != nil {
			return err
		}
		fmt.Println(text)
		return nil
	})
}

func extract(e env, videoURL, downloadURL string) (string, error) {
	x, err := transcript.NewFromConfig(e.ctx, e.cfg.LLM)
	if err != nil {
		return "", err
	}
	return x.Extract(e.ctx, videoURL, downloadURL)
}

func cmdRepurpose(args []string) error {
	fs := flag.NewFlagSet("repurpose", flag.ExitOnError)
	cfgPath := fs.String("config", defaultConfigPath, "config path")
	videoURL := fs.String("url", "", "video page URL")
	downloadURL := fs.String("download-url", "", "direct media URL (preferred)")
	file := fs.String("transcript-file", "", "use this transcript instead of transcribing a video")
	language := fs.String("language", "", "target audience language (default Turkish)")
	asJSON := fs.Bool("json", false, "print JSON")
	_ = fs.Parse(args)
	e, cancel, err := setup(*cfgPath)
	if err != nil {
		return err
	}
	defer cancel()
	return cmdlog.Run("repurpose", func(string) error {
		var text string
		if *file != "" {
			b, err := os.ReadFile(*file)
			if err != nil {
				return err
			}
			text = string(b)
		} else {
			t, err := extract(e, *videoURL, *downloadURL)
			if err != nil {
				return err
			}
			text = t
		}
		gen, err := e.generator()
		if err != nil {
			return err
		}
		r := &content.Repurposer{Gen: gen, Language: *language}
		script, err := r.Repurpose(e.ctx, text)
		if err != nil {
			return err
		}
		if *asJSON {
			return printJSON(script)
		}
		fmt.Println(theme.Title("Hook") + "\n" + script.Hook.Text)
		fmt.Println(theme.Title("Script") + "\n" + script.Script)
		fmt.Println(theme.Title("Descriptions"))
		for i, d := range script.Descriptions {
			fmt.Printf("%d. [%s] %s %s\n", i+1, d.Tone, d.Text, strings.Join(d.Hashtags, " "))
		}
		return nil
	})
}

func cmdServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfgPath := fs.String("config", defaultConfigPath, "config path")
	addr := fs.String("addr", "", "listen address (default from config)")
	_ = fs.Parse(args)
	e, cancel, err := setup(*cfgPath)
	if err != nil {
		return err
	}
	defer cancel()
	if *addr == "" {
		*addr = e.cfg.Server.Addr
	}
	return cmdlog.Run("serve", func(string) error {
		db, err := e.openDB()
		if err != nil {
			return err
		}
		defer db.Close()
		d, closeCache, err := e.discoverer()
		if err != nil {
			return err
		}
		defer closeCache()
		s := &api.Server{DB: db, TikTok: e.tiktok(), Instagram: e.instagram(), Discovery: d, Config: e.cfg}
		err = s.ListenAndServe(e.ctx, *addr)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
}

func cmdWatch(args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	cfgPath := fs.String("config", defaultConfigPath, "config path")
	keywords := fs.String("keywords", "", "comma-separated keywords (default from config)")
	interval := fs.Duration("interval", 0, "refresh interval (default from config)")
	_ = fs.Parse(args)
	e, cancel, err := setup(*cfgPath)
	if err != nil {
		return err
	}
	defer cancel()
	kws := splitList(*keywords)
	if len(kws) == 0 {
		kws = e.cfg.Refresh.Keywords
	}
	if *interval <= 0 {
		*interval = e.cfg.Refresh.Interval
	}
	return cmdlog.Run("watch", func(string) error {
		if len(kws) == 0 {
			return errors.New("watch: no keywords; pass -keywords or set refresh.keywords")
		}
		if err := e.cfg.RequireApify(); err != nil {
			return err
		}
		db, err := e.openDB()
		if err != nil {
			return err
		}
		defer db.Close()
		err = jobs.RunRefreshLoop(e.ctx, db, e.tiktok(), e.cfg, kws, *interval)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
}
