// This file is part of GopherAdvance.
//
// GopherAdvance is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherAdvance is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherAdvance.  If not, see <https://www.gnu.org/licenses/>.

package cartridgeloader

import (
	"context"
	"crypto/sha1"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/jetsetilly/gopheradvance/archivefs"
	"github.com/jetsetilly/gopheradvance/curated"
	"github.com/jetsetilly/gopheradvance/hardware"
	"github.com/jetsetilly/gopheradvance/hardware/cartridge"
	"github.com/jetsetilly/gopheradvance/logger"
)

// FileExtensions is the list of file extensions that are recognised by the
// cartridgeloader package.
var FileExtensions = [...]string{".GBA", ".AGB", ".BIN", ".NDS", ".SRL"}

// Loader is used to specify the image to use when creating a console. It also
// permits the caller to specify the console kind and the backup memory type.
type Loader struct {
	// filename of the image to load. can be a URL or a path into a zip archive
	Filename string

	// the console the image is for
	Kind hardware.Kind

	// backup memory type of a GBA cartridge. after a load operation with an
	// automatic save type the value will be the fingerprinted type
	SaveType cartridge.SaveType

	// expected hash of the loaded image. empty string indicates that the hash
	// is unknown and need not be validated. after a load operation the value
	// will be the hash of the loaded data
	Hash string

	// copy of the loaded data
	Data []byte

	autoSave bool
}

// NewLoader is the preferred method of initialisation for the Loader type.
//
// The kind argument is used to set the Kind field, unless the argument is
// either "AUTO" or the empty string. In which case the file extension is used.
// Files with the .NDS or .SRL extension are NDS cards, everything else is a GBA
// cartridge.
//
// The saveType argument is parsed with cartridge.ParseSaveType(), unless it is
// "AUTO", in which case the SaveType field is set by the Load() function.
func NewLoader(filename string, kind string, saveType string) (Loader, error) {
	cl := Loader{
		Filename: filename,
		Kind:     hardware.GBA,
	}

	switch strings.TrimSpace(strings.ToUpper(kind)) {
	case "", "AUTO":
		switch strings.ToUpper(path.Ext(filename)) {
		case ".NDS", ".SRL":
			cl.Kind = hardware.NDS
		}
	case "GBA":
	case "NDS":
		cl.Kind = hardware.NDS
	default:
		return Loader{}, curated.Errorf("cartridgeloader: %v", fmt.Sprintf("unknown console kind (%s)", kind))
	}

	if strings.TrimSpace(strings.ToUpper(saveType)) == "AUTO" {
		cl.autoSave = true
	} else {
		var err error
		cl.SaveType, err = cartridge.ParseSaveType(saveType)
		if err != nil {
			return Loader{}, err
		}
	}

	return cl, nil
}

// ShortName returns a shortened version of the Loader filename.
func (cl Loader) ShortName() string {
	return strings.TrimSuffix(path.Base(cl.Filename), path.Ext(cl.Filename))
}

// HasLoaded returns true if Load() has been successfully called.
func (cl Loader) HasLoaded() bool {
	return len(cl.Data) > 0
}

// Files returns the image in the form required by hardware.NewConsole(). The
// BIOS fields are left empty.
func (cl Loader) Files() hardware.Files {
	return hardware.Files{
		Image:    cl.Data,
		SaveType: cl.SaveType,
	}
}

// Load the image data. Loader filenames with a valid scheme will use that
// method to load the data. Currently supported schemes are HTTP and local
// files.
func (cl *Loader) Load(ctx context.Context) error {
	if len(cl.Data) > 0 {
		return nil
	}

	scheme := "file"

	url, err := url.Parse(cl.Filename)
	if err == nil {
		scheme = url.Scheme
	}

	switch scheme {
	case "http", "https":
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, cl.Filename, nil)
		if err != nil {
			return curated.Errorf("cartridgeloader: %v", err)
		}

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return curated.Errorf("cartridgeloader: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return curated.Errorf("cartridgeloader: %v", fmt.Sprintf("http status %s", resp.Status))
		}

		cl.Data, err = io.ReadAll(resp.Body)
		if err != nil {
			return curated.Errorf("cartridgeloader: %v", err)
		}

	case "file", "":
		cl.Data, err = archivefs.ReadFile(cl.Filename)
		if err != nil {
			return curated.Errorf("cartridgeloader: %v", err)
		}

	default:
		return curated.Errorf("cartridgeloader: %v", fmt.Sprintf("unsupported URL scheme (%s)", scheme))
	}

	if len(cl.Data) == 0 {
		return curated.Errorf("cartridgeloader: %v", "image is empty")
	}

	hash := fmt.Sprintf("%x", sha1.Sum(cl.Data))

	if cl.Hash != "" && cl.Hash != hash {
		cl.Data = nil
		return curated.Errorf("cartridgeloader: %v", "unexpected hash value")
	}

	cl.Hash = hash

	if cl.autoSave && cl.Kind == hardware.GBA {
		cl.SaveType = cartridge.Fingerprint(cl.Data)
		logger.Logf(logger.Allow, "cartridgeloader", "fingerprinted save type: %s", cl.SaveType)
	}

	return nil
}
