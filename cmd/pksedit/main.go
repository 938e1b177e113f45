package main

// savefile reader/editor for GBA saves
//
// example usage:
//
// pksedit load pokemon.sav
// pksedit get party
// pksedit set nature 1:Adamant
// pksedit set ev 1:attack:252
// pksedit set iv 1:speed:31
// pksedit set level 1:100
// pksedit save

import (
	"bufio"
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"

	"gopkg.in/ini.v1"

	"github.com/JohnDeved/pokemon-save-web-sub001/pokemon"
	"github.com/JohnDeved/pokemon-save-web-sub001/profiles"
	"github.com/JohnDeved/pokemon-save-web-sub001/readers"
	"github.com/JohnDeved/pokemon-save-web-sub001/tables"
	"github.com/JohnDeved/pokemon-save-web-sub001/writers"
)

// Evil global variables
var g_stash_filename = "pksedit.tmp"

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

// smash smashes "funny characters" (which includes anything that's remotely tricky to type into a command line) in a string into the '_' character
func smash(in string) string {
	out := ""
	for _, c := range in {
		if unicode.IsLetter(c) || unicode.IsDigit(c) {
			out += string(c)
		} else {
			out += "_"
		}
	}
	return out
}

// string matching functions, in strictly increasing order of desperation
var fuzzy = []func(input string, candidate string) bool{
	func(i string, c string) bool { return i == c },
	func(i string, c string) bool { return strings.ToUpper(i) == strings.ToUpper(c) },
	func(i string, c string) bool { return smash(strings.ToUpper(i)) == smash(strings.ToUpper(c)) },
	func(i string, c string) bool {
		return strings.HasPrefix(smash(strings.ToUpper(c)), smash(strings.ToUpper(i)))
	},
	func(i string, c string) bool {
		return strings.Contains(smash(strings.ToUpper(c)), smash(strings.ToUpper(i)))
	},
}

// fuzzy_reverse_lookup looks up "backwards" in a translation map
//
// trans: map to be looked up in
// to: map value
// what: type of thing to be looked up, as a human-readable string.  Used only in error construction and probably a mistake
//
// Returns: K: lookup result key, string: lookup result value (not necessarily equal to "to" due to fuzzy matching)
func fuzzy_reverse_lookup[K comparable](trans map[K]string, to string, what string) (K, string, error) {
	var K0 K

	for _, match := range fuzzy {
		matches := []K{}
		names := []string{}
		for k, v := range trans {
			if match(to, v) {
				matches = append(matches, k)
				names = append(names, v)
			}
		}
		if len(matches) == 0 {
			continue
		}
		if len(matches) > 1 {
			return K0, "", errors.New(fmt.Sprint("Ambiguous argument:", to, " could be anything from {", strings.Join(names, ", "), "}"))
		}

		return matches[0], names[0], nil
	}

	return K0, "", errors.New(to + " could not be matched to a valid value for " + what)
}

func nature_map() map[int]string {
	out := map[int]string{}
	for i, n := range tables.Natures {
		out[i] = n
	}
	return out
}

func stat_map() map[int]string {
	out := map[int]string{}
	for i, n := range pokemon.Stat_names {
		out[i] = n
	}
	return out
}

var settables = []string{"nature", "ev", "iv", "level", "status"}

func main() {
	err := main2()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func main2() error {

	arg := "help"
	if len(os.Args) < 2 {
		fmt.Println("No args detected - falling back to \"help\", since you clearly need it...")
	} else {
		arg = os.Args[1]
	}

	switch arg {
	case "help":
		help_text := []string{
			"GBA Save File Editor",
			"",
			"Commands:",
			"help: display this text",
			"load (filename): load a file from the default location",
			"get party: show the loaded party",
			"set (what) (member:...): set something on a party member",
			"save: save the file, backing up the original",
			"",
			"Things that can be set are:",
		}
		for _, s := range settables {
			help_text = append(help_text, "   "+s)
		}
		help_text = append(help_text, []string{
			"",
			"Notes:",
			"   Party members are numbered from 1.",
			"   It is usually not necessary to type the full name of something",
			"e.g. \"ada\" will be recognized as \"Adamant\".",
		}...)

		for _, ht := range help_text {
			fmt.Println(ht)
		}

	case "load":
		if len(os.Args) < 3 {
			return errors.New("Load what?  Filename expected.")
		}

		full_filename := get_dir() + "/" + os.Args[2]
		image, err := os.ReadFile(full_filename)
		if err != nil {
			return err
		}

		profile, err := readers.Detect(image, profiles.Default_profiles())
		if err != nil {
			return err
		}
		fmt.Println("Loaded", full_filename, "-", profile.Name())

		return stash(full_filename, profile.Name(), image)

	case "save":
		filename, _, image, err := retrieve()
		if err != nil {
			return err
		}

		// Back up the old file
		// Since this is a "powerful" (i.e. capable of completely trashing savefiles) tool,
		// that's probably a good idea
		newname := filename[:len(filename)-3] + "old"
		err = os.Rename(filename, newname)
		if err != nil {
			return err
		}
		fmt.Println(filename, "renamed to", newname)

		f, err := os.Create(filename)
		if err != nil {
			return err
		}
		defer f.Close()
		writer := bufio.NewWriter(f)
		_, err = writer.Write(image)
		if err != nil {
			return err
		}
		writer.Flush()
		f.Sync()
		fmt.Println("New file written to", filename)

		err = os.Remove(g_stash_filename)
		if err != nil {
			return err
		}
		fmt.Println("Temporary data cleaned up")

	case "get":
		_, save, _, err := retrieve_parsed()
		if err != nil {
			return err
		}

		fmt.Println("Trainer:", save.Player_name, " Playtime:", save.Playtime_string())
		for n, mon := range save.Party {
			fmt.Printf("%v: %v\n", n+1, mon)
			evs, ivs := mon.Evs(), mon.Ivs()
			fmt.Println("   EVs:", evs, " IVs:", ivs)
		}

	case "set":
		if len(os.Args) < 4 {
			return errors.New("Usage: set (what) (member:...).  Settables are: " + strings.Join(settables, ", "))
		}
		what := os.Args[2]
		to := os.Args[3]

		filename, save, _, err := retrieve_parsed()
		if err != nil {
			return err
		}

		matched, err := set(what, to, save)
		if err != nil {
			return err
		}
		fmt.Println(what, "set to", matched)

		image, err := writers.Reconstruct(save, save.Party)
		if err != nil {
			return err
		}
		return stash(filename, save.Profile.Name(), image)

	default:
		return errors.New("Unknown command " + arg + ".  Try \"help\".")
	}

	return nil
}

// set applies one mutation.  `to` is colon-separated: member number first,
// then whatever the field needs.
func set(what, to string, save *pokemon.Savedata) (string, error) {
	bits := strings.Split(to, ":")

	n, err := strconv.Atoi(bits[0])
	if err != nil || n < 1 || n > len(save.Party) {
		return "", fmt.Errorf("No party member %q (have %v)", bits[0], len(save.Party))
	}
	mon := save.Party[n-1]

	switch what {
	case "nature":
		if len(bits) != 2 {
			return "", errors.New("Expected member:nature")
		}
		id, matched, err := fuzzy_reverse_lookup(nature_map(), bits[1], "nature")
		if err != nil {
			return "", err
		}
		return matched, mon.Set_nature(id)

	case "ev", "iv":
		if len(bits) != 3 {
			return "", errors.New("Expected member:stat:value")
		}
		stat, matched, err := fuzzy_reverse_lookup(stat_map(), bits[1], "stat")
		if err != nil {
			return "", err
		}
		value, err := strconv.Atoi(bits[2])
		if err != nil {
			return "", err
		}
		if what == "iv" {
			if value < 0 || value > 31 {
				return "", errors.New("IVs run 0-31")
			}
			mon.Set_iv(stat, uint8(value))
		} else {
			if value < 0 || value > 255 {
				return "", errors.New("EVs run 0-255")
			}
			mon.Set_ev(stat, uint8(value))
		}
		return matched + ":" + bits[2], nil

	case "level":
		if len(bits) != 2 {
			return "", errors.New("Expected member:level")
		}
		value, err := strconv.Atoi(bits[1])
		if err != nil {
			return "", err
		}
		if value < 1 || value > 100 {
			return "", errors.New("Levels run 1-100")
		}
		mon.Set_level(uint8(value))
		return bits[1], nil

	case "status":
		if len(bits) != 2 {
			return "", errors.New("Expected member:status")
		}
		value, err := strconv.Atoi(bits[1])
		if err != nil {
			return "", err
		}
		mon.Set_status(uint8(value))
		return bits[1], nil
	}

	return "", errors.New(what + " is not settable.  Settables are: " + strings.Join(settables, ", "))
}

// The stash holds the filename, the profile name and the (possibly edited)
// raw image.  Edits are folded back into the image before stashing, so the
// stash never needs to serialize decoded structures.
func stash(filename string, profile_name string, image []byte) error {
	f, err := os.Create(g_stash_filename)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	encoder := gob.NewEncoder(w)
	err = encoder.Encode(filename)
	if err != nil {
		return err
	}
	err = encoder.Encode(profile_name)
	if err != nil {
		return err
	}
	err = encoder.Encode(image)
	if err != nil {
		return err
	}
	w.Flush()
	f.Sync()

	return nil
}

func retrieve() (string, string, []byte, error) {
	f, err := os.Open(g_stash_filename)
	if err != nil {
		return "", "", nil, errors.New("Nothing loaded (" + err.Error() + ")")
	}
	defer f.Close()

	decoder := gob.NewDecoder(bufio.NewReader(f))
	filename := ""
	profile_name := ""
	image := []byte{}
	err = decoder.Decode(&filename)
	if err != nil {
		return "", "", nil, err
	}
	err = decoder.Decode(&profile_name)
	if err != nil {
		return "", "", nil, err
	}
	err = decoder.Decode(&image)
	if err != nil {
		return "", "", nil, err
	}

	return filename, profile_name, image, nil
}

func retrieve_parsed() (string, *pokemon.Savedata, profiles.Profile, error) {
	filename, profile_name, image, err := retrieve()
	if err != nil {
		return "", nil, nil, err
	}

	for _, profile := range profiles.Default_profiles() {
		if profile.Name() == profile_name {
			save, err := readers.Read_savedata(image, profile)
			return filename, save, profile, err
		}
	}
	return "", nil, nil, errors.New("Stash mentions unknown game " + profile_name)
}
