package main

// GBA save file dumper
// usage: pksdump [--dir savedir] [--debug] [--slot a|b] savefile.sav
//
// save file location is read from the ini file unless --dir says otherwise

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/JohnDeved/pokemon-save-web-sub001/pokemon"
	"github.com/JohnDeved/pokemon-save-web-sub001/profiles"
	"github.com/JohnDeved/pokemon-save-web-sub001/readers"
	"github.com/JohnDeved/pokemon-save-web-sub001/tables"
	"github.com/JohnDeved/pokemon-save-web-sub001/types"
)

func get_dir(args []string) string {
	// dir from command line
	for i, arg := range args {
		if arg == "--dir" && i+1 < len(args) {
			return args[i+1]
		}
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

// hp_bar draws current/max as a 20-character bar.
func hp_bar(current, max uint16) string {
	if max == 0 {
		return "[????????????????????]"
	}
	filled := int(current) * 20 / int(max)
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", 20-filled) + "]"
}

func dump_sectors(save *pokemon.Savedata) []string {
	out := []string{}
	out = append(out, fmt.Sprintf("Slot sums: A=%v B=%v, active base %v", save.Sum_a, save.Sum_b, save.Active_slot))
	for _, s := range save.Sectors {
		if !s.Present {
			out = append(out, fmt.Sprintf("sector %2v: absent", s.Index))
			continue
		}
		validity := "INVALID"
		if s.Valid {
			validity = "ok"
		}
		out = append(out, fmt.Sprintf("sector %2v: id=%2v checksum=%04x signature=%08x counter=%v (%v)",
			s.Index, s.Id, s.Checksum, s.Signature, s.Counter, validity))
	}
	return out
}

func dump_party(save *pokemon.Savedata) []string {
	out := []string{}
	out = append(out, fmt.Sprintf("Trainer: %v  Playtime: %v", save.Player_name, save.Playtime_string()))
	out = append(out, fmt.Sprintf("Party: %v", save.Party_size()))

	for n, mon := range save.Party {
		shiny := ""
		if s := mon.Shininess(); s != types.SH_NORMAL {
			shiny = " *" + s.String() + "*"
		}
		out = append(out, "")
		out = append(out, fmt.Sprintf("%v: %v (%v)%v  Lv.%v %v",
			n+1, mon.Nickname(), tables.Species_name(mon.Species()), shiny, mon.Level(), mon.Nature()))
		out = append(out, fmt.Sprintf("   HP %v %v/%v", hp_bar(mon.Current_hp(), mon.Max_hp()), mon.Current_hp(), mon.Max_hp()))
		out = append(out, fmt.Sprintf("   OT: %v (%v)  Friendship: %v  Exp: %v",
			mon.Ot_name(), mon.Ot_id_string(), mon.Friendship(), mon.Experience()))

		moves := "   Moves:"
		for _, move := range mon.Moves() {
			if move.Id == 0 {
				continue
			}
			moves += fmt.Sprintf(" %v(pp %v)", move.Id, move.Pp)
		}
		out = append(out, moves)

		evs, ivs := mon.Evs(), mon.Ivs()
		for stat := range pokemon.Stat_names {
			out = append(out, fmt.Sprintf("   %-10s EV:%3v IV:%3v", pokemon.Stat_names[stat], evs[stat], ivs[stat]))
		}
	}

	if save.Party_warning != nil {
		out = append(out, fmt.Sprintf("WARNING: %v", save.Party_warning))
	}
	return out
}

// parse_args digests the command line: flags out, save filename back.
// forced is the slot base to force, or -1 for "resolve normally".
func parse_args(args []string) (filename string, debug bool, forced int, err error) {
	forced = -1
	for i := 0; i < len(args); i += 1 {
		switch args[i] {
		case "--dir":
			if i+1 >= len(args) {
				return "", false, -1, fmt.Errorf("--dir wants a directory")
			}
			i += 1 // value handled in get_dir
		case "--debug":
			debug = true
		case "--slot":
			if i+1 >= len(args) {
				return "", false, -1, fmt.Errorf("--slot wants a or b")
			}
			i += 1
			switch strings.ToLower(args[i]) {
			case "a":
				forced = 0
			case "b":
				forced = 14
			default:
				return "", false, -1, fmt.Errorf("--slot wants a or b, not %v", args[i])
			}
		default:
			filename = args[i]
		}
	}

	if filename == "" {
		return "", false, -1, fmt.Errorf("usage: pksdump [--dir savedir] [--debug] [--slot a|b] savefile.sav")
	}
	return filename, debug, forced, nil
}

func main() {
	args := os.Args[1:]
	filename, debug, forced, err := parse_args(args)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	full_filename := get_dir(args) + "/" + filename
	bytes, err := os.ReadFile(full_filename)
	if err != nil {
		fmt.Println("Failed to load file", full_filename, "-", err)
		os.Exit(1)
	}

	profile, err := readers.Detect(bytes, profiles.Default_profiles())
	if err != nil {
		fmt.Println("Failed to recognise", full_filename, "-", err)
		os.Exit(1)
	}
	fmt.Println("Game:", profile.Name())

	var save *pokemon.Savedata
	if forced >= 0 {
		save, err = readers.Read_savedata_slot(bytes, profile, forced)
	} else {
		save, err = readers.Read_savedata(bytes, profile)
	}
	if err != nil {
		fmt.Println("Failed to parse", full_filename, "-", err)
		os.Exit(1)
	}

	fmt.Println()
	if debug {
		for _, line := range dump_sectors(save) {
			fmt.Println(line)
		}
		fmt.Println()
	}
	for _, line := range dump_party(save) {
		fmt.Println(line)
	}
	fmt.Println()
}
