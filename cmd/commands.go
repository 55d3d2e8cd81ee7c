package cmd

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/util"
	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mogaika/gbe_scene_converter/scene"
	"github.com/mogaika/gbe_scene_converter/scenefile"
	"github.com/mogaika/gbe_scene_converter/utils"
	"github.com/mogaika/gbe_scene_converter/utils/gltfutils"
	"github.com/mogaika/gbe_scene_converter/web"
)

// loadScene builds a fresh live scene from document at path.
// Broken subtrees are already reported through the status log, so only
// missing or unparsable documents fail.
func (a *app) loadScene(path string) (*scene.Scene, error) {
	root, err := a.conv.ReadDocument(path)
	if err != nil {
		return nil, err
	}
	s := scene.NewScene()
	if err := a.conv.Instantiate(root, s, nil); err != nil {
		a.log.Warnf("Scene %s loaded partially", path)
	}
	return s, nil
}

func printTree(w io.Writer, roots []*scene.Node) {
	for _, root := range roots {
		root.Walk(func(n *scene.Node, depth int) bool {
			kinds := make([]string, 0)
			for _, c := range n.Components() {
				kinds = append(kinds, c.Kind().String())
			}
			state := ""
			if !n.Active {
				state = " (inactive)"
			}
			fmt.Fprintf(w, "%s%s%s [%s] pos %s rot %s scale %s\n",
				strings.Repeat("  ", depth), n.Name, state, strings.Join(kinds, " "),
				utils.FormatVec3(n.Position), utils.FormatVec3(n.EulerAngles()), utils.FormatVec3(n.Scale))
			return true
		})
	}
}

var convertCmd = &cobra.Command{
	Use:   "convert [input] [output]",
	Short: "Load scene document and save it again, format is picked by output extension",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.log.Sync()

		s, err := a.loadScene(args[0])
		if err != nil {
			return err
		}

		out := args[1]
		if filepath.Ext(out) == "" {
			out += a.cfg.Extension()
		}
		return a.conv.SaveScene(out, s)
	},
}

var treeNode string

var treeCmd = &cobra.Command{
	Use:   "tree [input]",
	Short: "Print live hierarchy produced by loading scene document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.log.Sync()

		s, err := a.loadScene(args[0])
		if err != nil {
			return err
		}
		roots := s.RootNodes()
		if treeNode != "" {
			n := s.Find(treeNode)
			if n == nil {
				return errors.Errorf("Node %q not found", treeNode)
			}
			roots = []*scene.Node{n}
		}
		printTree(cmd.OutOrStdout(), roots)
		return nil
	},
}

var queryCmd = &cobra.Command{
	Use:   "query [input] [jsonpath]",
	Short: "Run JSONPath expression over scene document",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.log.Sync()

		x, err := jp.ParseString(args[1])
		if err != nil {
			return errors.Wrapf(err, "Invalid jsonpath %q", args[1])
		}

		root, err := a.conv.ReadDocument(args[0])
		if err != nil {
			return err
		}
		// yaml documents are queried through their json form
		data, err := scenefile.JSONCodec{}.Marshal(root)
		if err != nil {
			return err
		}
		doc, err := oj.ParseString(string(data))
		if err != nil {
			return errors.Wrapf(err, "Failed to parse document")
		}

		fmt.Fprintln(cmd.OutOrStdout(), oj.JSON(x.Get(doc), 2))
		return nil
	},
}

var dumpCmd = &cobra.Command{
	Use:   "dump [input]",
	Short: "Dump parsed scene document structures",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.log.Sync()

		root, err := a.conv.ReadDocument(args[0])
		if err != nil {
			return err
		}
		utils.FDump(cmd.OutOrStdout(), root)
		return nil
	},
}

var exportGltfCmd = &cobra.Command{
	Use:   "export-gltf [input] [output]",
	Short: "Export live hierarchy as gltf, or glb when output ends with .glb",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.log.Sync()

		s, err := a.loadScene(args[0])
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		if err := gltfutils.ExportScene(&buf, s, gltfutils.IsBinaryPath(args[1])); err != nil {
			return err
		}
		if err := util.WriteFile(a.storage.Filesystem(), args[1], buf.Bytes(), 0666); err != nil {
			return errors.Wrapf(err, "Failed to write %q", args[1])
		}
		a.log.Infof("Scene exported to: %s", args[1])
		return nil
	},
}

var serveAddress string

var serveCmd = &cobra.Command{
	Use:   "serve [input]",
	Short: "Serve live scene over http",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.log.Sync()

		s := scene.NewScene()
		if len(args) != 0 {
			if s, err = a.loadScene(args[0]); err != nil {
				return err
			}
		}

		addr := a.cfg.Web.Address
		if serveAddress != "" {
			addr = serveAddress
		}
		return web.NewServer(s, a.conv, a.log).Start(addr)
	},
}

var initConfigCmd = &cobra.Command{
	Use:   "init-config",
	Short: "Write default config file if it does not exist",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.log.Sync()

		data, err := a.cfg.Marshal()
		if err != nil {
			return err
		}
		state := "existing"
		if a.configCreated {
			state = "created"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "# %s (%s)\n%s", configPath, state, data)
		return nil
	},
}

func init() {
	treeCmd.Flags().StringVarP(&treeNode, "node", "n", "", "Print only subtree of first node with this name")
	serveCmd.Flags().StringVarP(&serveAddress, "addr", "i", "", "Address of server, overrides config")
}
