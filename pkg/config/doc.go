/*
Package config loads the build definitions abjure runs when no source and
target are given on the command line.

	            +-------------+
	            |   Config    |
	            |  (Builds)   |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+----+ +-----+----+ +-----+----+
	|   HCL    | |   YAML   | |   JSON   |
	|  Parser  | |  Parser  | |  Parser  |
	+----------+ +----------+ +----------+

🎯 Purpose:
- Picks a parser by file extension
- Decodes build blocks and the parallel switch
- Validates and normalizes paths and extensions

🔄 Flow:
1. Reads the file
2. Parses format-specific syntax (unknown fields are errors)
3. Validates every build
4. Resolves relative paths against the config file's directory

HCL files may reference the environment through the env object:

	build "web" {
	  source = "src"
	  target = "${env.OUT_DIR}/web"
	}

🔍 Example:

	cfg, err := config.Load(ctx, ".abjure.hcl")
	if err != nil {
		return err
	}
	for _, b := range cfg.Builds {
		fmt.Println(b)
	}
*/
package config
