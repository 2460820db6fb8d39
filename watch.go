// watch.go - re-run the expansion when the input changes
// Copyright (C) 2022  Ali AslRousta <aslrousta@gmail.com>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// watchInput expands inputName into outputName whenever the input
// file is written to, until the process is interrupted.
func watchInput(e *expander, inputName, outputName string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	// Watch the directory, the file may be replaced on save.
	target, err := filepath.Abs(inputName)
	if err != nil {
		return err
	}
	err = w.Add(filepath.Dir(target))
	if err != nil {
		return err
	}
	log.Println("watching", inputName)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	defer signal.Stop(sig)

	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			name, err := filepath.Abs(ev.Name)
			if err != nil || name != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			err = e.expandFile(inputName, outputName)
			if err != nil {
				log.Println(err)
			} else {
				log.Println("updated", outputName)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Println("watch:", err)
		case <-sig:
			return nil
		}
	}
}
