package main

// Watches a save directory and reports party changes as the game (or an
// emulator's autosave) rewrites the file.
//
// usage: pkswatch [--dir savedir]

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/ini.v1"

	"github.com/JohnDeved/pokemon-save-web-sub001/pokemon"
	"github.com/JohnDeved/pokemon-save-web-sub001/profiles"
	"github.com/JohnDeved/pokemon-save-web-sub001/readers"
	"github.com/JohnDeved/pokemon-save-web-sub001/tables"
)

func get_dir() string {
	// dir from command line
	if len(os.Args) > 1 && os.Args[1] == "--dir" {
		return os.Args[2]
	}

	//dir from ini file
	cfg, err := ini.Load("pksave.ini")
	if err == nil {
		// Classic read of values, default section can be represented as empty string
		dir := cfg.Section("").Key("dir").String()
		if dir != "" {
			return dir
		}
	}

	wd, _ := os.Getwd()
	return wd
}

// summary is one line per party member - enough to notice levels, evolution
// and heals without drowning in output.
func summary(save *pokemon.Savedata) []string {
	out := []string{}
	for _, mon := range save.Party {
		out = append(out, fmt.Sprintf("%v (%v) Lv.%v %v/%v",
			mon.Nickname(), tables.Species_name(mon.Species()), mon.Level(),
			mon.Current_hp(), mon.Max_hp()))
	}
	return out
}

func handle_file(filename string, last map[string][]string) {
	// Wait for the emulator to finish with the file; flash writes land in
	// several bursts.
	time.Sleep(2 * time.Second)

	image, err := os.ReadFile(filename)
	if err != nil {
		fmt.Println("Failed to load file", filename, "-", err)
		return
	}

	profile, err := readers.Detect(image, profiles.Default_profiles())
	if err != nil {
		fmt.Println("Failed to recognise", filename, "-", err)
		return
	}

	save, err := readers.Read_savedata(image, profile)
	if err != nil {
		fmt.Println("Failed to parse", filename, "-", err)
		return
	}

	lines := summary(save)
	if strings.Join(lines, "\n") == strings.Join(last[filename], "\n") {
		return // nothing the watcher cares about changed
	}
	last[filename] = lines

	fmt.Println()
	fmt.Println(filename, "-", profile.Name(), "-", save.Player_name, save.Playtime_string())
	for _, line := range lines {
		fmt.Println("   " + line)
	}
}

func main() {
	dir := get_dir()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer watcher.Close()

	last := map[string][]string{}
	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Has(fsnotify.Write) {
					if strings.HasSuffix(strings.ToLower(event.Name), ".sav") {
						handle_file(event.Name, last)
					}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				fmt.Println(err)
			}
		}
	}()

	err = watcher.Add(dir)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	fmt.Println("Watching...", dir)
	fmt.Println()

	// Wait forever!
	<-make(chan bool)
}
